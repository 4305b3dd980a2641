package query

// RestartCommand is the sole supported workspace/executeCommand (§4.8, §6).
const RestartCommand = "phppp.restart"

// ExecuteCommand reports whether command is recognized. The restart
// command's actual process-exit side effect is performed by the transport
// layer (internal/server) after this call returns, so a well-formed
// response can still reach the client first.
func (h *Handlers) ExecuteCommand(command string) bool {
	return command == RestartCommand
}
