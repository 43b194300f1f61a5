package api

// CredentialsRequest is used by Register and Login.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// OTPRequest is used by ConfirmRegistration and ConfirmLogin.
type OTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type ConfirmLoginResponse struct {
	Status string `json:"status"`
	SID    string `json:"sid"`
}

type Empty struct{}

type ResourceRequest struct {
	ResourceName string `json:"resource_name"`
}

type PublicKeyResponse struct {
	PublicKey string `json:"public_key"`
}

type PrivateKeyResponse struct {
	PrivateKey string `json:"private_key"`
}

type GrantAccessRequest struct {
	ResourceName string `json:"resource_name"`
	GranteeEmail string `json:"grantee_email"`
}

type ListAccessResponse struct {
	Members []string `json:"members"`
}

// BlobPayload is the encrypted object exchanged by UploadBlob and
// DownloadBlob. Byte fields travel base64-encoded.
type BlobPayload struct {
	EncryptedData []byte `json:"encrypted_data"`
	EncryptedKey  []byte `json:"encrypted_key"`
	IV            []byte `json:"iv"`
}

type UploadBlobRequest struct {
	ResourceName string `json:"resource_name"`
	BlobPayload
}
