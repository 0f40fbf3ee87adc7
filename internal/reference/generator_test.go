package reference_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"latexref/internal/llm"
	"latexref/internal/reference"
	"latexref/internal/reference/mocks"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

const replyDoc = "# Latex Reference\n## Greek Letters\nalpha, $\\alpha$, lowercase alpha.\n"

func writeMacroList(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "macros_used.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write macro list: %v", err)
	}
	return path
}

func fixedClock() time.Time {
	return time.Date(2023, 7, 15, 22, 36, 59, 0, time.UTC)
}

func TestFileName(t *testing.T) {
	tests := []struct {
		model string
		want  string
	}{
		{model: "gpt-4", want: "latex_reference_gpt-4_2023-07-15_22-36.md"},
		{model: "openai/gpt-4o", want: "latex_reference_openai-gpt-4o_2023-07-15_22-36.md"},
	}

	for _, tt := range tests {
		if got := reference.FileName(tt.model, fixedClock()); got != tt.want {
			t.Errorf("FileName(%q) = %q, want %q", tt.model, got, tt.want)
		}
	}
}

func TestUserMessage(t *testing.T) {
	got := reference.UserMessage("", "alpha\nbeta\n")
	want := "The following are latex macros commonly used in a Bayesian statistics class:\nalpha\nbeta"
	if got != want {
		t.Errorf("UserMessage() = %q, want %q", got, want)
	}

	if got := reference.UserMessage("linear algebra", "det\n"); !strings.Contains(got, "a linear algebra class:") {
		t.Errorf("UserMessage() = %q, want custom subject", got)
	}
}

func TestSystemPrompt(t *testing.T) {
	for _, want := range []string{"Greek Letters", "# Latex Reference", "## Category", `$\macro$`, "full Greek alphabet"} {
		if !strings.Contains(reference.SystemPrompt, want) {
			t.Errorf("SystemPrompt does not contain %q", want)
		}
	}
}

func TestGenerator_Generate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	macroPath := writeMacroList(t, "alpha\nbeta\n")
	outputDir := filepath.Join(t.TempDir(), "refs")

	mockCompleter := mocks.NewMockCompleter(ctrl)
	mockCompleter.EXPECT().
		ChatWithMessages(gomock.Any(), gomock.Any(), llm.ChatParams{Model: "gpt-4", Temperature: 0.5}).
		DoAndReturn(func(ctx context.Context, messages []llm.Message, params llm.ChatParams) (string, error) {
			if len(messages) != 2 {
				t.Fatalf("ChatWithMessages() got %d messages, want 2", len(messages))
			}
			if messages[0].Role != llm.RoleSystem || messages[0].Content != reference.SystemPrompt {
				t.Errorf("first message = %+v, want the system prompt", messages[0])
			}
			if messages[1].Role != llm.RoleUser || !strings.HasSuffix(messages[1].Content, "class:\nalpha\nbeta") {
				t.Errorf("second message = %+v, want the macro list", messages[1])
			}
			return replyDoc, nil
		})

	generator := reference.NewGenerator(mockCompleter, reference.Options{
		Model:       "gpt-4",
		Temperature: 0.5,
		OutputDir:   outputDir,
		Now:         fixedClock,
	})

	path, err := generator.Generate(context.Background(), macroPath)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	wantPath := filepath.Join(outputDir, "latex_reference_gpt-4_2023-07-15_22-36.md")
	if path != wantPath {
		t.Errorf("Generate() path = %q, want %q", path, wantPath)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read reference: %v", err)
	}
	if string(content) != replyDoc {
		t.Errorf("reference content = %q, want %q", content, replyDoc)
	}
}

func TestGenerator_Generate_Errors(t *testing.T) {
	tests := []struct {
		name      string
		macroList *string
		mockSetup func(*mocks.MockCompleter)
		wantErr   error
	}{
		{
			name:      "missing macro list",
			mockSetup: func(m *mocks.MockCompleter) {},
			wantErr:   os.ErrNotExist,
		},
		{
			name:      "empty macro list",
			macroList: ptr("\n\n"),
			mockSetup: func(m *mocks.MockCompleter) {},
			wantErr:   reference.ErrEmptyMacroList,
		},
		{
			name:      "completion failure",
			macroList: ptr("alpha\n"),
			mockSetup: func(m *mocks.MockCompleter) {
				m.EXPECT().ChatWithMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return("", llm.ErrNoChoices)
			},
			wantErr: llm.ErrNoChoices,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockCompleter := mocks.NewMockCompleter(ctrl)
			tt.mockSetup(mockCompleter)

			macroPath := filepath.Join(t.TempDir(), "missing.txt")
			if tt.macroList != nil {
				macroPath = writeMacroList(t, *tt.macroList)
			}

			outputDir := t.TempDir()
			generator := reference.NewGenerator(mockCompleter, reference.Options{Model: "gpt-4", OutputDir: outputDir, Now: fixedClock})

			_, err := generator.Generate(context.Background(), macroPath)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Generate() error = %v, want %v", err, tt.wantErr)
			}

			entries, _ := os.ReadDir(outputDir)
			if len(entries) != 0 {
				t.Errorf("Generate() wrote %d files after an error, want 0", len(entries))
			}
		})
	}
}

func TestGenerator_Generate_KeepsMalformedReply(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCompleter := mocks.NewMockCompleter(ctrl)
	mockCompleter.EXPECT().ChatWithMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return("Sorry, here is a list: alpha", nil)

	generator := reference.NewGenerator(mockCompleter, reference.Options{Model: "gpt-4", OutputDir: t.TempDir(), Now: fixedClock})

	path, err := generator.Generate(context.Background(), writeMacroList(t, "alpha\n"))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Generate() did not write %s: %v", path, err)
	}
}

func ptr(s string) *string {
	return &s
}
