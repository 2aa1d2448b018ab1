package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Nydauron/reefscout/catalog"
	"github.com/Nydauron/reefscout/record"
	"github.com/Nydauron/reefscout/stages"
)

type region int

const (
	regionNone region = iota
	regionStart
	regionPositions
	regionReef
)

// block is one vertical slice of the screen. Clickable blocks are boxed.
type block struct {
	view   string
	region region
}

func text(lines ...string) block {
	return block{view: strings.Join(lines, "\n")}
}

func (a *App) View() string {
	views := make([]string, 0, 8)
	for _, b := range a.layout() {
		views = append(views, b.view)
	}
	return strings.Join(views, "\n")
}

func (a *App) layout() []block {
	s := a.styles
	title := "reefscout"
	if a.catalog != nil {
		title = s.Title.Render(a.catalog.Title) + "  " + s.Subtitle.Render(a.catalog.PageTitle)
	}
	blocks := []block{text(title, a.bar.View()), text("")}

	switch a.state {
	case stateLoading:
		return blocks
	case stateFailed:
		return append(blocks,
			text(s.Error.Render("The field catalog could not be loaded."), a.err.Error()),
			text(""),
			text(s.Help.Render("r retry • q quit")))
	}

	switch a.wizard.Step() {
	case stages.StepPrematch:
		blocks = append(blocks, a.prematchPage()...)
	case stages.StepAutonomous:
		blocks = append(blocks, a.autonPage()...)
	case stages.StepTeleop:
		blocks = append(blocks, a.teleopPage()...)
	case stages.StepEndgame:
		blocks = append(blocks, a.controlsBlock(stages.StepEndgame))
	case stages.StepExport:
		blocks = append(blocks, a.exportPage()...)
	}

	if a.notice != "" {
		blocks = append(blocks, text(""), text(s.Notice.Render(a.notice)))
	}
	return append(blocks, text(""), text(s.Help.Render(a.help())))
}

func (a *App) help() string {
	nav := "ctrl+n next • ctrl+p back • ctrl+c quit"
	switch a.wizard.Step() {
	case stages.StepPrematch, stages.StepEndgame:
		return "tab/↓ next field • shift+tab/↑ previous • " + nav
	case stages.StepAutonomous:
		return "1-4 f h p b attempt • u undo • e edit • c coral location • click field to add position • x remove position • " + nav
	case stages.StepTeleop:
		return "1-4 f h p b attempt • u undo • e edit • +/- penalties • d defense • k died • space cycle timer • " + nav
	case stages.StepExport:
		return "enter export and start next match • X clear all • " + nav
	}
	return nav
}

func (a *App) label(stage catalog.Stage, code, fallback string) string {
	return a.catalog.Label(stage, code, fallback)
}

// choiceLabel returns the catalog's label for one choice of a field.
func (a *App) choiceLabel(stage catalog.Stage, field, code, fallback string) string {
	if a.catalog == nil {
		return fallback
	}
	f, ok := a.catalog.Field(stage, field)
	if !ok {
		return fallback
	}
	for _, c := range f.Choices {
		if c.Code == code && c.Label != "" {
			return c.Label
		}
	}
	return fallback
}

func (a *App) charLimit(stage catalog.Stage, code string, fallback int) int {
	if a.catalog != nil {
		if f, ok := a.catalog.Field(stage, code); ok && f.MaxSize > 0 {
			return f.MaxSize
		}
	}
	return fallback
}

func (a *App) buildControls() {
	p, e := a.wizard.Prematch, a.wizard.Endgame

	positions := make([]SelectionOption, len(record.RobotPositions))
	for i, pos := range record.RobotPositions {
		positions[i] = SelectionOption{Key: string(pos), DisplayText: a.choiceLabel(catalog.Prematch, "robot", string(pos), strings.ToUpper(string(pos)))}
	}
	climbs := func(code string) []SelectionOption {
		out := make([]SelectionOption, len(record.ClimbStatuses))
		for i, c := range record.ClimbStatuses {
			out[i] = SelectionOption{Key: string(c), DisplayText: a.choiceLabel(catalog.Endgame, code, string(c), string(c))}
		}
		return out
	}

	a.controls = map[stages.Step][]Control{
		stages.StepPrematch: {
			NewPrompt(InputData{
				Question:  a.label(catalog.Prematch, "scouter_name", "Scouter Initials"),
				CharLimit: stages.MaxInitials,
				Get:       func(r record.MatchRecord) string { return r.ScouterInitials },
				Set:       p.SetScouterInitials,
			}),
			NewPrompt(InputData{
				Question:  a.label(catalog.Prematch, "event", "Event"),
				CharLimit: a.charLimit(catalog.Prematch, "event", 0),
				Get:       func(r record.MatchRecord) string { return r.Event },
				Set:       p.SetEvent,
			}),
			NewSelection(a.label(catalog.Prematch, "match_level", "Match Level"),
				[]SelectionOption{
					{Key: string(record.Qualification), DisplayText: "Qualification"},
					{Key: string(record.Elimination), DisplayText: "Elimination"},
				},
				func(r record.MatchRecord) string { return string(r.MatchLevel) },
				func(k string) { p.SetMatchLevel(record.MatchLevel(k)) }),
			NewPrompt(InputData{
				Question:  a.label(catalog.Prematch, "match_number", "Match #"),
				CharLimit: 4,
				Get:       func(r record.MatchRecord) string { return r.MatchNumber },
				Set:       p.SetMatchNumber,
			}),
			NewSelection(a.label(catalog.Prematch, "robot", "Robot"), positions,
				func(r record.MatchRecord) string { return string(r.RobotPosition) },
				func(k string) { p.SetRobotPosition(record.RobotPosition(k)) }),
			NewPrompt(InputData{
				Question:  a.label(catalog.Prematch, "team_number", "Team #"),
				CharLimit: 5,
				Get:       func(r record.MatchRecord) string { return r.TeamNumber },
				Set:       p.SetTeamNumber,
			}),
		},
		stages.StepEndgame: {
			NewSelection(a.label(catalog.Endgame, "deep_climb", "Deep Climb"), climbs("deep_climb"),
				func(r record.MatchRecord) string { return string(r.DeepClimb) },
				func(k string) { e.SetDeepClimb(record.ClimbStatus(k)) }),
			NewSelection(a.label(catalog.Endgame, "shallow_climb", "Shallow Climb"), climbs("shallow_climb"),
				func(r record.MatchRecord) string { return string(r.ShallowClimb) },
				func(k string) { e.SetShallowClimb(record.ClimbStatus(k)) }),
			NewSelection(a.label(catalog.Endgame, "parked", "Parked"), climbs("parked"),
				func(r record.MatchRecord) string { return string(r.Parked) },
				func(k string) { e.SetParked(record.ClimbStatus(k)) }),
			NewPrompt(InputData{
				Question:  a.label(catalog.Endgame, "comments", "Comments"),
				CharLimit: a.charLimit(catalog.Endgame, "comments", record.MaxCommentLength),
				Get:       func(r record.MatchRecord) string { return r.Comments },
				Set:       e.SetComments,
			}),
			NewPrompt(InputData{
				Question:  a.label(catalog.Endgame, "red_alliance_score", "Red Alliance Score"),
				CharLimit: a.charLimit(catalog.Endgame, "red_alliance_score", 3),
				Get:       func(r record.MatchRecord) string { return r.RedAllianceScore },
				Set:       e.SetRedAllianceScore,
			}),
			NewPrompt(InputData{
				Question:  a.label(catalog.Endgame, "blue_alliance_score", "Blue Alliance Score"),
				CharLimit: a.charLimit(catalog.Endgame, "blue_alliance_score", 3),
				Get:       func(r record.MatchRecord) string { return r.BlueAllianceScore },
				Set:       e.SetBlueAllianceScore,
			}),
		},
	}
	a.sync()
}

func (a *App) controlsBlock(step stages.Step) block {
	views := make([]string, 0, len(a.controls[step]))
	for _, c := range a.controls[step] {
		views = append(views, c.View(a.styles))
	}
	return text(views...)
}

func (a *App) prematchPage() []block {
	r := a.wizard.Prematch.Record()
	hint := "click to set"
	if r.RobotPosition.Alliance() == record.NoAlliance {
		hint = "choose a robot first"
	}
	return []block{
		a.controlsBlock(stages.StepPrematch),
		text(""),
		text(a.styles.Label.Render(a.label(catalog.Prematch, "auto_start_position", "Auto Start Position")) + a.styles.Help.Render(hint)),
		{view: renderField(a.wizard.Prematch.Image(), a.styles, startMarks(r, a.styles)), region: regionStart},
	}
}

// sequenceTable lists every scoring target with its key and summary.
func (a *App) sequenceTable(stage catalog.Stage, sc scorer) block {
	rows := make([]string, 0, len(targetKeys))
	for _, tk := range targetKeys {
		f, ok := sc.FieldFor(tk.target)
		if !ok {
			continue
		}
		name := a.label(stage, string(stage)+"_"+tk.code, tk.target.String())
		rows = append(rows, fmt.Sprintf("[%s] %s%s", tk.key, a.styles.Label.Render(name), sc.Sequence(f).Summary()))
	}
	return text(rows...)
}

// promptLine is the open outcome prompt or bulk editor, or the bulk editor's
// target hint.
func (a *App) promptLine(sc scorer) block {
	switch {
	case a.bulkOpen:
		return text(a.styles.Focused.Render("Edit "+a.bulkField.String()) + a.bulk.View() + "  enter apply • esc cancel")
	case a.bulkPick:
		return text(a.styles.Help.Render("Edit which target? 1-4 f h p b"))
	}
	if t, ok := sc.Pending(); ok {
		return text(OutcomePrompt{Label: t.String()}.View(a.styles))
	}
	return text("")
}

func (a *App) autonPage() []block {
	auton := a.wizard.Autonomous
	r := auton.Record()
	loc := string(r.CoralScoredLocation)
	if loc == "" {
		loc = "none"
	}
	loc = a.choiceLabel(catalog.Auton, "coral_scored_location", string(r.CoralScoredLocation), loc)
	return []block{
		a.sequenceTable(catalog.Auton, auton),
		text(a.styles.Label.Render(a.label(catalog.Auton, "coral_scored_location", "Coral Scored Location")) + loc),
		a.promptLine(auton),
		{view: renderReef(auton.Rings(), a.styles), region: regionReef},
		text(a.styles.Label.Render(a.label(catalog.Auton, "auton_scoring_positions", "Scoring Positions")) +
			fmt.Sprintf("%d", len(r.AutonScoringPositions))),
		{view: renderField(a.wizard.Prematch.Image(), a.styles, positionMarks(r, a.styles)), region: regionPositions},
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func (a *App) teleopPage() []block {
	teleop := a.wizard.Teleop
	r := teleop.Record()
	s := a.styles
	timer := fmt.Sprintf("%d recorded", len(r.ScoringCycles))
	if teleop.Timing() {
		timer = fmt.Sprintf("%.1fs running, %s", teleop.Elapsed().Seconds(), timer)
	}
	return []block{
		a.sequenceTable(catalog.Teleop, teleop),
		text(
			s.Label.Render(a.label(catalog.Teleop, "penalties", "Penalties"))+fmt.Sprintf("%d", r.Penalties),
			s.Label.Render(a.label(catalog.Teleop, "played_defense", "Played Defense"))+yesNo(r.PlayedDefense),
			s.Label.Render(a.label(catalog.Teleop, "robot_died", "Robot Died"))+yesNo(r.RobotDisabled),
			s.Label.Render(a.label(catalog.Teleop, "cycle_timer", "Cycle Timer"))+timer,
		),
		a.promptLine(teleop),
		{view: renderReef(teleop.Rings(), s), region: regionReef},
	}
}

func (a *App) exportPage() []block {
	exp := a.wizard.Export
	payload := exp.Payload()
	code, err := a.qr.Terminal(payload)
	if err != nil {
		code = a.styles.Error.Render(err.Error())
	}
	preview := lipgloss.NewStyle().Foreground(Muted).Render(exp.Preview())
	return []block{
		text(code),
		text(a.styles.Subtitle.Render(fmt.Sprintf("%s encoding, %d bytes", exp.Strategy(), len(payload)))),
		text(preview),
	}
}
