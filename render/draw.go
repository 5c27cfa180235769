package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/kettleram/cookie-crunch/flow"
)

var (
	styleTitle   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	stylePrompt  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleMonster = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleChosen  = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleCorrect = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleWrong   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleError   = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

// Draw renders the current screen. Called once per tick from the main loop.
func (ui *UI) Draw() {
	ui.screen.Clear()

	switch ui.state.Kind {
	case flow.StateMainMenu:
		ui.drawMenu()
	case flow.StateQuestionSubmission:
		ui.drawForm()
	case flow.StateLoading:
		ui.drawText(2, 2, stylePrompt, "Loading...")
	case flow.StateGameplay:
		ui.drawGameplay()
	case flow.StateGameOver, flow.StatePracticeComplete:
		ui.drawResults()
	}

	ui.screen.Show()
}

func (ui *UI) drawText(x, y int, style tcell.Style, text string) {
	for i, r := range text {
		ui.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (ui *UI) drawMenu() {
	ui.drawText(2, 1, styleTitle, "COOKIE CRUNCH")
	ui.drawText(2, 2, styleDim, "share the cookies, learn to divide")
	ui.drawText(2, 4, stylePrompt, "[p] practice  - no timer, no lives")
	ui.drawText(2, 5, stylePrompt, "[t] test      - timed, limited lives, your own questions")
	ui.drawText(2, 7, styleDim, "[q] quit")
}

func (ui *UI) drawForm() {
	ui.drawText(2, 1, styleTitle, "SUBMIT QUESTIONS")
	ui.drawText(2, 2, styleDim, "type cookies/monsters and press enter, [s] to start, [esc] back")

	for i, q := range ui.entries {
		line := fmt.Sprintf("%2d. %d cookies for %d monsters (%d each)",
			i+1, q.Dividend, q.Divisor, q.Quotient)
		ui.drawText(2, 4+i, stylePrompt, line)
	}

	y := 5 + len(ui.entries)
	ui.drawText(2, y, stylePrompt, "> "+ui.input)
	if ui.formErr != "" {
		ui.drawText(2, y+1, styleError, ui.formErr)
	}
}

func (ui *UI) drawGameplay() {
	session := ui.driver.Session()
	if session == nil || ui.question == nil {
		return
	}
	state := session.State()

	header := fmt.Sprintf("question %d/%d", state.QuestionNumber, state.TotalQuestions)
	ui.drawText(2, 1, styleTitle, header)

	hud := fmt.Sprintf("score %d", state.Score)
	if ui.hasLives {
		hud += fmt.Sprintf("   lives %d", ui.lives)
	}
	if ui.timeLeft != "" {
		hud += "   time " + ui.timeLeft
	}
	ui.drawText(2, 2, stylePrompt, hud)

	prompt := fmt.Sprintf("share %d cookies among %d monsters", ui.question.Dividend, ui.question.Divisor)
	ui.drawText(2, 4, stylePrompt, prompt)

	// Monster row: one box per monster, keyed 1..n
	for m := 0; m < ui.cfg.MaxMonsters; m++ {
		x := 2 + m*8
		style := styleMonster
		if ui.counts[m] > 0 {
			style = styleChosen
		}
		ui.drawText(x, 6, style, fmt.Sprintf("[%d]", m+1))
		ui.drawText(x, 7, style, "(o,o)")
		ui.drawText(x, 8, style, fmt.Sprintf(" %2d", ui.counts[m]))
	}

	ui.drawText(2, 10, styleDim, "[1-"+fmt.Sprint(ui.cfg.MaxMonsters)+"] drop a cookie  [enter] done  [esc] menu")

	if ui.verdict != nil {
		if ui.verdict.IsCorrect {
			ui.drawText(2, 12, styleCorrect, "correct!")
		} else {
			msg := fmt.Sprintf("not quite - each monster needed %d cookies", ui.verdict.CorrectAnswer)
			ui.drawText(2, 12, styleWrong, msg)
		}
	}
}

func (ui *UI) drawResults() {
	result := ui.state.Result
	if result == nil {
		return
	}

	if ui.state.Kind == flow.StatePracticeComplete {
		ui.drawText(2, 1, styleTitle, "PRACTICE COMPLETE")
	} else {
		ui.drawText(2, 1, styleTitle, "GAME OVER")
	}

	ui.drawText(2, 3, stylePrompt, fmt.Sprintf("final score  %d", result.FinalScore))
	ui.drawText(2, 4, stylePrompt, fmt.Sprintf("accuracy     %.0f%%", result.Accuracy*100))
	ui.drawText(2, 5, stylePrompt, fmt.Sprintf("grade        %s", result.Grade))

	if result.NewHighScore {
		ui.drawText(2, 7, styleCorrect, fmt.Sprintf("new high score: %d", result.HighScore))
	} else {
		ui.drawText(2, 7, styleDim, fmt.Sprintf("high score: %d", result.HighScore))
	}

	ui.drawText(2, 9, styleDim, "[r] retry  [m] menu  [q] quit")
}
