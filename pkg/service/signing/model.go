package signing

import (
	"github.com/ledgercred/credential-service/internal/xrpl"
)

// Result is what a caller gets back for a queued signing request. The signing service alone enforces
// its expiry.
type Result struct {
	UUID    string
	SignURL string
	Pushed  bool
}

// payloadRequest is the body of a payload creation call on the signing platform api.
type payloadRequest struct {
	TxJSON  xrpl.Transaction `json:"txjson"`
	Options payloadOptions   `json:"options"`
}

type payloadOptions struct {
	Submit bool `json:"submit"`
	Expire int  `json:"expire"`
}

type payloadResponse struct {
	UUID string `json:"uuid"`
	Next *struct {
		Always string `json:"always"`
	} `json:"next"`
	Refs *struct {
		QRPNG           string `json:"qr_png"`
		WebsocketStatus string `json:"websocket_status"`
	} `json:"refs"`
	Pushed bool `json:"pushed"`
}

type platformError struct {
	Error struct {
		Reference string `json:"reference"`
		Code      int    `json:"code"`
	} `json:"error"`
}

type outcome int

const (
	complete outcome = iota
	incomplete
)

// payloadOutcome is the tagged result of parsing a payload creation response.
type payloadOutcome struct {
	kind   outcome
	result Result
	reason string
}
