/*
Package server implements msgpack IPC for the word store.

Clients write a stream of msgpack maps to stdin and read one response map per
request from stdout. Every request carries an id that is echoed back.

# Completion

	{"id": "req_001", "p": "ca", "l": 3}

Suggestions come back ranked: highest count first, ties by byte order.

	{"id": "req_001", "s": [{"w": "cat", "c": 3, "r": 1}, {"w": "cart", "c": 2, "r": 2}], "c": 2, "t": 41}

"c" inside a suggestion is the number of times the word was inserted, "r" its
1-based rank and "t" the lookup time in microseconds. A missing limit uses
server.default_limit; limits above server.max_limit are clamped.

# Insertion

	{"id": "ins_001", "action": "insert", "w": ["cat", "cat", "dog"]}
	{"id": "ins_001", "status": "ok", "n": 3}

# Stats

	{"id": "st_001", "action": "stats"}
	{"id": "st_001", "stats": {"words": 2, "nodes": 7, ...}}

Failures are reported as {"id": ..., "e": message, "c": code}.
*/
package server

// Request is the envelope for every client message. Action defaults to "complete".
type Request struct {
	ID     string   `msgpack:"id"`
	Action string   `msgpack:"action,omitempty"`
	Prefix string   `msgpack:"p,omitempty"`
	Limit  int      `msgpack:"l,omitempty"`
	Words  []string `msgpack:"w,omitempty"`
}

// CompletionRequest is the minimal shape a client sends for a completion.
// Its keys are a subset of Request's, which is what the server decodes.
type CompletionRequest struct {
	ID     string `msgpack:"id"`
	Prefix string `msgpack:"p"`
	Limit  int    `msgpack:"l,omitempty"`
}

// InsertRequest is the client-side shape of an insert; the server decodes it as a Request.
type InsertRequest struct {
	ID     string   `msgpack:"id"`
	Action string   `msgpack:"action"`
	Words  []string `msgpack:"w"`
}

// CompletionSuggestion is one ranked word
type CompletionSuggestion struct {
	Word  string `msgpack:"w"`
	Count int    `msgpack:"c"`
	Rank  uint16 `msgpack:"r"`
}

// CompletionResponse answers a completion request
type CompletionResponse struct {
	ID          string                 `msgpack:"id"`
	Suggestions []CompletionSuggestion `msgpack:"s"`
	Count       int                    `msgpack:"c"`
	TimeTaken   int64                  `msgpack:"t"`
}

// InsertResponse answers an insert request
type InsertResponse struct {
	ID       string `msgpack:"id"`
	Status   string `msgpack:"status"`
	Inserted int    `msgpack:"n"`
}

// StatsResponse answers a stats request
type StatsResponse struct {
	ID    string         `msgpack:"id"`
	Stats map[string]int `msgpack:"stats"`
}

// CompletionError holds basic error information for failed requests
type CompletionError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}

const (
	ActionComplete = "complete"
	ActionInsert   = "insert"
	ActionStats    = "stats"
)
