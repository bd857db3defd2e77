package room

// Response is a message sent to a websocket client
type Response struct {
	Key     string      `json:"key"`
	Value   string      `json:"value,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Context string      `json:"context,omitempty"`
}

// PayloadIn is the format we expect from the JS client
type PayloadIn struct {
	// Action is one of choice, reset or state
	Action string `json:"action"`
	// Subject is the choice for the choice action
	Subject string `json:"subject"`
	// Context will be passed back on any outgoing message
	Context string `json:"context"`
}

// Response keys
const (
	keyGame  = "game"
	keyToast = "toast"
	keyError = "error"
)

// Actions accepted over the websocket
const (
	ActionChoice = "choice"
	ActionReset  = "reset"
	ActionState  = "state"
)
