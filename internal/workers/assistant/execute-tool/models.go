// internal/workers/assistant/execute-tool/models.go
package executetool

type Input struct {
	Tool string            `json:"tool"`
	Args map[string]string `json:"args"`
}

type Output struct {
	Tool   string            `json:"tool"`
	Result map[string]string `json:"result"`
}
