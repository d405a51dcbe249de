// Package naming holds the provider-agnostic halves of name generation: the
// prompt builder that frames a command list for a completion backend, and the
// sanitizer that turns whatever the backend returns into a bounded label.
package naming

import (
	"strings"

	"github.com/samber/lo"

	"github.com/doeshing/termnamer/internal/domain"
)

const instructionChinese = `为终端生成简短名称(2-5字)。提取命令中的具体信息(服务名/环境/目标),不要泛泛分类。只输出名称。

kubectl get pods -n payment → 支付Pod
ssh deploy@staging-api → Staging部署
npm run dev:admin → Admin开发
docker logs nginx → Nginx日志
git clone repo/user-svc → 用户服务
python train.py --model=bert → Bert训练
curl api.stripe.com → Stripe接口
cd ~/blog && npm start → Blog启动
pytest test_auth.py → 认证测试
ls, pwd, cd → 文件浏览`

const instructionEnglish = `Generate short terminal name(1-3 words, hyphen-joined). Extract specific info(service/env/target), not generic categories. Output name only.

kubectl get pods -n payment → Payment-Pods
ssh deploy@staging-api → Staging-Deploy
npm run dev:admin → Admin-Dev
docker logs nginx → Nginx-Logs
git clone repo/user-svc → User-Service
python train.py --model=bert → Bert-Training
curl api.stripe.com → Stripe-API
cd ~/blog && npm start → Blog-Start
pytest test_auth.py → Auth-Tests
ls, pwd, cd → Files`

// commandSeparator keeps the input on a single completion line.
const commandSeparator = ", "

// Instruction returns the fixed few-shot instruction for lang.
func Instruction(lang domain.Language) string {
	if lang.IsIdeographic() {
		return instructionChinese
	}
	return instructionEnglish
}

// PromptCommands trims, de-duplicates and caps the commands that are sent to
// a backend. The first occurrence of a command wins.
func PromptCommands(commands []string) []string {
	trimmed := lo.FilterMap(commands, func(cmd string, _ int) (string, bool) {
		cmd = strings.TrimSpace(cmd)
		return cmd, cmd != ""
	})
	unique := lo.Uniq(trimmed)
	if len(unique) > domain.MaxPromptCommands {
		unique = unique[:domain.MaxPromptCommands]
	}
	return unique
}

// BuildPrompt frames commands for completion. An empty command list yields an
// empty input; the instruction is always present.
func BuildPrompt(commands []string, lang domain.Language) domain.Prompt {
	prompt := domain.Prompt{Instruction: Instruction(lang)}
	selected := PromptCommands(commands)
	if len(selected) == 0 {
		return prompt
	}
	// Newlines inside a single command would break the one-line input.
	selected = lo.Map(selected, func(cmd string, _ int) string {
		return strings.Join(strings.Fields(cmd), " ")
	})
	prompt.Input = strings.Join(selected, commandSeparator) + " →"
	return prompt
}
