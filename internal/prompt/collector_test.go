package prompt

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gorewood/gitcc/internal/conventional"
	"github.com/gorewood/gitcc/internal/output"
)

// scripted answers questions in order and records their titles.
type scripted struct {
	answers []any
	asked   []Question
}

func (s *scripted) next(q Question) (any, error) {
	s.asked = append(s.asked, q)
	if len(s.answers) == 0 {
		return nil, errors.New("unexpected question: " + q.Title)
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	if err, ok := a.(error); ok {
		return nil, err
	}
	return a, nil
}

func (s *scripted) str(q Question) (string, error) {
	a, err := s.next(q)
	if err != nil {
		return "", err
	}
	v := a.(string)
	if q.Validate != nil {
		if err := q.Validate(v); err != nil {
			return "", err
		}
	}
	return v, nil
}

func (s *scripted) Select(_ context.Context, q Question) (string, error) { return s.str(q) }
func (s *scripted) Input(_ context.Context, q Question) (string, error)  { return s.str(q) }
func (s *scripted) Text(_ context.Context, q Question) (string, error)   { return s.str(q) }

func (s *scripted) Confirm(_ context.Context, q Question) (bool, error) {
	a, err := s.next(q)
	if err != nil {
		return false, err
	}
	return a.(bool), nil
}

func TestCollect(t *testing.T) {
	tests := []struct {
		name    string
		answers []any
		want    conventional.Message
		asked   int
	}{
		{
			name:    "minimal",
			answers: []any{"feat", "", "add login", "", false, ""},
			want:    conventional.Message{Type: "feat", Subject: "add login"},
			asked:   6,
		},
		{
			name:    "all fields",
			answers: []any{"fix", " api ", "handle nil ", "Body text.", true, "drops v1", "#12"},
			want: conventional.Message{
				Type: "fix", Scope: "api", Subject: "handle nil", Body: "Body text.",
				Breaking: true, BreakingNote: "drops v1", Issues: "#12",
			},
			asked: 7,
		},
		{
			name:    "subject asked again",
			answers: []any{"docs", "", "  ", "fix typo", "", false, ""},
			want:    conventional.Message{Type: "docs", Subject: "fix typo"},
			asked:   7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &scripted{answers: tt.answers}
			got, err := NewCollector(p, nil).Collect(context.Background())
			if err != nil {
				t.Fatalf("Collect() error = %v", err)
			}
			if got.Type != tt.want.Type || got.Scope != tt.want.Scope ||
				got.Subject != tt.want.Subject || got.Body != tt.want.Body ||
				got.Breaking != tt.want.Breaking || got.BreakingNote != tt.want.BreakingNote ||
				got.Issues != tt.want.Issues {
				t.Errorf("Collect() = %+v, want %+v", got, tt.want)
			}
			if len(p.asked) != tt.asked {
				t.Errorf("asked %d questions, want %d", len(p.asked), tt.asked)
			}
		})
	}
}

func TestCollect_EmptySubjectTwice(t *testing.T) {
	p := &scripted{answers: []any{"feat", "", "", ""}}
	_, err := NewCollector(p, nil).Collect(context.Background())
	if !output.IsKind(err, output.KindInput) {
		t.Fatalf("Collect() error = %v, want input error", err)
	}
	if !strings.Contains(err.Error(), "subject is required") {
		t.Errorf("error = %q, want subject message", err)
	}
}

func TestCollect_Abort(t *testing.T) {
	p := &scripted{answers: []any{"feat", ErrAborted}}
	_, err := NewCollector(p, nil).Collect(context.Background())
	if output.GetExitCode(err) != output.ExitInputError {
		t.Errorf("exit code = %d, want %d", output.GetExitCode(err), output.ExitInputError)
	}
	if !errors.Is(err, ErrAborted) {
		t.Errorf("error = %v, want to wrap ErrAborted", err)
	}
}

func TestCollect_PrompterFailure(t *testing.T) {
	p := &scripted{answers: []any{errors.New("tty gone")}}
	_, err := NewCollector(p, nil).Collect(context.Background())
	if !output.IsKind(err, output.KindSystem) {
		t.Errorf("Collect() error = %v, want system error", err)
	}
}

func TestCollect_TypeOptionsAndScopes(t *testing.T) {
	types := conventional.TypeSet{
		{Name: "feat", Description: "A new feature"},
		{Name: "wip"},
	}
	p := &scripted{answers: []any{"wip", "cli", "x", "", false, ""}}
	c := NewCollector(p, types)
	c.Scopes = []string{"cli", "api"}

	if _, err := c.Collect(context.Background()); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	opts := p.asked[0].Options
	if len(opts) != 2 || opts[0].Label != "feat: A new feature" || opts[1].Value != "wip" {
		t.Errorf("type options = %+v", opts)
	}
	if got := p.asked[1].Suggestions; len(got) != 2 || got[0] != "cli" {
		t.Errorf("scope suggestions = %v", got)
	}
}

func TestCollect_ScopeValidation(t *testing.T) {
	p := &scripted{answers: []any{"feat", "a(b)"}}
	_, err := NewCollector(p, nil).Collect(context.Background())
	if err == nil || !strings.Contains(err.Error(), "parentheses") {
		t.Errorf("Collect() error = %v, want parentheses error", err)
	}
}

func TestCollect_Notice(t *testing.T) {
	var buf bytes.Buffer
	p := &scripted{answers: []any{"feat", "", "x", "", false, ""}}
	c := NewCollector(p, nil)
	c.Width = 72
	c.Notice = &buf

	if _, err := c.Collect(context.Background()); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if !strings.Contains(buf.String(), "cropped at 72 characters") {
		t.Errorf("notice = %q", buf.String())
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name    string
		answer  any
		wantErr bool
	}{
		{"accepted", true, false},
		{"declined", false, true},
		{"aborted", ErrAborted, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printer := output.NewPrinter(&buf, false, false)
			p := &scripted{answers: []any{tt.answer}}

			err := Confirm(context.Background(), p, printer, "feat: x\n\nbody")
			if (err != nil) != tt.wantErr {
				t.Fatalf("Confirm() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && output.GetExitCode(err) != output.ExitInputError {
				t.Errorf("exit code = %d, want 1", output.GetExitCode(err))
			}
			if !strings.Contains(buf.String(), "feat: x") {
				t.Errorf("preview = %q", buf.String())
			}
		})
	}
}
