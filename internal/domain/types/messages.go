package types

// Sealed is one encrypted message as produced by the crypto layer. The
// sender key names the claimed author; it is carried for the receiver's
// convenience and is not itself authenticated by the box primitive.
type Sealed struct {
	Nonce      Nonce     `json:"nonce"`
	Ciphertext []byte    `json:"ciphertext"`
	SenderKey  PublicKey `json:"sender_key"`
}

// Envelope is the wire-format message you post to and fetch from the relay.
// Sender, receiver and timestamp travel in the clear; only nonce and
// ciphertext come from the crypto layer.
type Envelope struct {
	ID         MessageID `json:"id"`
	From       Username  `json:"from"`
	To         Username  `json:"to"`
	Nonce      Nonce     `json:"nonce"`
	Ciphertext []byte    `json:"ciphertext"`
	SentAt     int64     `json:"sent_at"`
}

// Message is what MessageService.ReceiveMessages returns for one envelope.
// Failed marks an envelope that could not be authenticated; Text is empty
// in that case.
type Message struct {
	ID     MessageID `json:"id"`
	From   Username  `json:"from"`
	Text   string    `json:"text"`
	SentAt int64     `json:"sent_at"`
	Failed bool      `json:"failed,omitempty"`
}

// SentRecord is the sender-side archive entry for one sent message. The
// box construction does not let an author reopen their own wire payload,
// so the plaintext is retained locally at send time.
type SentRecord struct {
	ID     MessageID `json:"id"`
	To     Username  `json:"to"`
	Text   string    `json:"text"`
	SentAt int64     `json:"sent_at"`
}
