package session

import (
	"context"
	"fmt"

	"docgaps/internal/editor"
	"docgaps/internal/highlight"
	"docgaps/internal/insert"
	"docgaps/internal/llm"
	"docgaps/internal/parser"
)

// Prompter is the blocking operator interface. Choose re-prompts until a
// character in valid is entered; Collect gathers lines until a blank one.
type Prompter interface {
	Choose(msg string, valid string) (byte, error)
	Collect(msg, seed string) (string, error)
	Say(msg string)
}

// Outcome records one target's resolution. Doc is only meaningful when
// Accepted is true.
type Outcome struct {
	Target   parser.Target
	Doc      string
	Accepted bool
}

// Session walks targets strictly in registry order, one at a time, and
// negotiates a docstring for each. Nothing touches the files until the
// caller applies the outcomes.
type Session struct {
	prompter    Prompter
	generator   llm.Generator
	editor      editor.Launcher
	highlighter highlight.Highlighter
	showBody    bool

	editorNoticeShown bool
}

func New(p Prompter, g llm.Generator, e editor.Launcher, h highlight.Highlighter, showBody bool) *Session {
	if h == nil {
		h = highlight.Noop{}
	}
	if e == nil {
		e = editor.None{}
	}
	return &Session{prompter: p, generator: g, editor: e, highlighter: h, showBody: showBody}
}

// Run negotiates every target. Quit is not an error: it stops early and
// the outcomes recorded so far are returned for application. The only
// error path is a malformed target, which is an extractor bug and aborts.
func (s *Session) Run(ctx context.Context, targets []parser.Target) ([]Outcome, error) {
	var outcomes []Outcome

	for idx, tgt := range targets {
		if err := s.present(idx+1, len(targets), tgt); err != nil {
			return outcomes, err
		}

		action, err := s.prompter.Choose("(g)enerate / (m)anual / (s)kip / (q)uit > ", "gmsq")
		if err != nil {
			return outcomes, err
		}

		switch action {
		case 'q':
			return outcomes, nil
		case 's':
			outcomes = append(outcomes, Outcome{Target: tgt})
			continue
		case 'm':
			doc, err := s.editDoc("")
			if err != nil {
				return outcomes, err
			}
			outcomes = append(outcomes, Outcome{Target: tgt, Doc: doc, Accepted: true})
			continue
		}

		// action == 'g'
		outcome, quit, err := s.generateLoop(ctx, tgt)
		if err != nil {
			return outcomes, err
		}
		if outcome != nil {
			outcomes = append(outcomes, *outcome)
		}
		if quit {
			return outcomes, nil
		}
	}

	return outcomes, nil
}

// generateLoop drives GENERATING and its review/error states for one
// target. A nil outcome with quit=false never happens; quit=true may
// carry no outcome when the operator quits from an error prompt.
func (s *Session) generateLoop(ctx context.Context, tgt parser.Target) (*Outcome, bool, error) {
	for {
		suggestion, genErr := s.generator.GenerateDocstring(ctx, tgt.Source)
		if genErr != nil {
			s.prompter.Say(fmt.Sprintf("\nError during generation: %v\n", genErr))
			choice, err := s.prompter.Choose("(r)etry / (s)kip / (q)uit > ", "rsq")
			if err != nil {
				return nil, false, err
			}
			switch choice {
			case 'r':
				continue
			case 's':
				return &Outcome{Target: tgt}, false, nil
			default: // 'q'
				return nil, true, nil
			}
		}

		s.prompter.Say("\nSuggested docstring:\n" + indentBlock(suggestion, "    "))
		choice, err := s.prompter.Choose("(a)ccept / (r)egenerate / (e)dit / (s)kip / (q)uit > ", "aresq")
		if err != nil {
			return nil, false, err
		}
		switch choice {
		case 'a':
			return &Outcome{Target: tgt, Doc: insert.Normalize(suggestion), Accepted: true}, false, nil
		case 'e':
			doc, err := s.editDoc(suggestion)
			if err != nil {
				return nil, false, err
			}
			return &Outcome{Target: tgt, Doc: doc, Accepted: true}, false, nil
		case 's':
			return &Outcome{Target: tgt}, false, nil
		case 'q':
			return nil, true, nil
		}
		// 'r': regenerate
	}
}

func (s *Session) present(idx, total int, tgt parser.Target) error {
	snippet := tgt.Source
	if !s.showBody {
		sig, err := tgt.Signature()
		if err != nil {
			return err
		}
		snippet = sig
	}

	s.prompter.Say(banner(idx, total, tgt))
	s.prompter.Say(s.highlighter.Highlight(snippet))
	return nil
}

// editDoc collects a docstring via the external editor, falling back to
// inline collection after one notice, and normalizes the result.
func (s *Session) editDoc(seed string) (string, error) {
	edited, err := s.editor.Edit(seed)
	if err != nil {
		if !s.editorNoticeShown {
			s.prompter.Say("External editor unavailable, using inline input.")
			s.editorNoticeShown = true
		}
		edited, err = s.prompter.Collect("Enter docstring (end with an empty line):", seed)
		if err != nil {
			return "", err
		}
	}
	return insert.Normalize(edited), nil
}
