package xrpl

// TransactionType is the ledger's discriminator for a transaction's shape.
type TransactionType string

const (
	CredentialCreateType TransactionType = "CredentialCreate"
	CredentialAcceptType TransactionType = "CredentialAccept"
)

func (t TransactionType) String() string {
	return string(t)
}

// Transaction is a prepared, unsigned ledger transaction ready to be serialized into a signing request.
type Transaction interface {
	Type() TransactionType
	// Signer is the account expected to sign the transaction.
	Signer() string
}

// CredentialCreate issues a credential from Account to Subject. URI is omitted from the JSON when empty.
type CredentialCreate struct {
	TransactionType TransactionType `json:"TransactionType"`
	Account         string          `json:"Account"`
	Subject         string          `json:"Subject"`
	CredentialType  string          `json:"CredentialType"`
	URI             string          `json:"URI,omitempty"`
}

func (c CredentialCreate) Type() TransactionType {
	return CredentialCreateType
}

func (c CredentialCreate) Signer() string {
	return c.Account
}

// CredentialAccept is signed by the credential subject to accept a credential issued by Issuer.
type CredentialAccept struct {
	TransactionType TransactionType `json:"TransactionType"`
	Account         string          `json:"Account"`
	Issuer          string          `json:"Issuer"`
	CredentialType  string          `json:"CredentialType"`
}

func (c CredentialAccept) Type() TransactionType {
	return CredentialAcceptType
}

func (c CredentialAccept) Signer() string {
	return c.Account
}

// Verify interface compliance https://github.com/uber-go/guide/blob/master/style.md#verify-interface-compliance
var (
	_ Transaction = (*CredentialCreate)(nil)
	_ Transaction = (*CredentialAccept)(nil)
)

// BuildCreate assembles a CredentialCreate signed by the requester (the issuer). Inputs are expected to be
// validated and encoded already; nothing is re-checked here.
func BuildCreate(requester, subject, credentialTypeWire, uri string) CredentialCreate {
	return CredentialCreate{
		TransactionType: CredentialCreateType,
		Account:         requester,
		Subject:         subject,
		CredentialType:  credentialTypeWire,
		URI:             uri,
	}
}

// BuildAccept assembles a CredentialAccept. The signing account is always the subject.
func BuildAccept(subject, issuer, credentialTypeWire string) CredentialAccept {
	return CredentialAccept{
		TransactionType: CredentialAcceptType,
		Account:         subject,
		Issuer:          issuer,
		CredentialType:  credentialTypeWire,
	}
}
