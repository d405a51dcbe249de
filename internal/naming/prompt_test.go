package naming_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/doeshing/termnamer/internal/domain"
	"github.com/doeshing/termnamer/internal/naming"
)

func TestBuildPrompt(t *testing.T) {
	t.Run("dedupes and caps commands", func(t *testing.T) {
		commands := []string{"ls", "git status", "ls", "npm test", "make", "go vet", "docker ps", "kubectl get pods"}
		prompt := naming.BuildPrompt(commands, domain.LanguageEnglish)

		assert.Equal(t, "ls, git status, npm test, make, go vet →", prompt.Input)
		assert.NotContains(t, prompt.Input, "\n")
	})

	t.Run("empty commands keep instruction", func(t *testing.T) {
		prompt := naming.BuildPrompt(nil, domain.LanguageChinese)

		assert.Empty(t, prompt.Input)
		assert.Equal(t, naming.Instruction(domain.LanguageChinese), prompt.Instruction)
	})

	t.Run("blank commands are ignored", func(t *testing.T) {
		prompt := naming.BuildPrompt([]string{"  ", "\t"}, domain.LanguageEnglish)
		assert.Empty(t, prompt.Input)
	})

	t.Run("multi-line command stays on one line", func(t *testing.T) {
		prompt := naming.BuildPrompt([]string{"echo a \\\n  && echo b"}, domain.LanguageEnglish)
		assert.Equal(t, "echo a \\ && echo b →", prompt.Input)
	})

	t.Run("instruction follows language", func(t *testing.T) {
		zh := naming.BuildPrompt([]string{"ls"}, domain.LanguageChinese)
		en := naming.BuildPrompt([]string{"ls"}, domain.LanguageEnglish)

		assert.Contains(t, zh.Instruction, "2-5字")
		assert.Contains(t, en.Instruction, "1-3 words")
		assert.Equal(t, 10, strings.Count(en.Instruction, " → "))
		assert.Equal(t, zh.Input, en.Input)
	})
}

func TestPromptCommands(t *testing.T) {
	got := naming.PromptCommands([]string{" git push ", "git push", "", "git pull"})
	assert.Equal(t, []string{"git push", "git pull"}, got)
}
