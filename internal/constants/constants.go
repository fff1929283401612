package constants

const (
	// IDRandomBytes is the entropy behind every persisted entity ID
	// (rendered as 2*IDRandomBytes hex characters after the prefix).
	IDRandomBytes = 12
)
