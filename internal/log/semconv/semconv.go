package semconv

// Engine
const (
	// Unique ID of one script execution. UUIDv7, so IDs sort by start time.
	RunID = "run_id"

	// File name of the script, or a placeholder such as "<eval>" for inline source.
	ScriptName = "script_name"

	// Number of statements at the top level of a parsed program.
	StatementCount = "statement_count"

	// Number of syntax faults reported for one parse.
	FaultCount = "fault_count"
)

// REPL
const (
	// Sequence number of the input evaluated in a session, starting at 1.
	InputNumber = "input_number"
)
