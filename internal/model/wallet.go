package model

// CWTFile represents .cwt keystore file structure
type CWTFile struct {
	Network    string `json:"network"`
	Address    string `json:"address"`
	QR         string `json:"QR"`
	ScryptN    int    `json:"scryptN,omitempty"`
	Salt       string `json:"salt"`
	Nonce      string `json:"nonce"`
	CipherText string `json:"cipherText"`
}

// WalletData represents decrypted keystore data
type WalletData struct {
	Mnemonic  []byte `json:"mnemonic"` // space separated recovery phrase (stored as base64 in JSON)
	CreatedAt string `json:"createdAt"`
}
