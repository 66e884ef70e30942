package credentials

import (
	"fmt"

	"github.com/kholes/mqcred/pkg/codec"
	"github.com/kholes/mqcred/pkg/password"
)

// storedClient is the JSON shape of one record in a credential file.
// Password and salt are base64 text; iterations and disabled are plain
// scalars.
type storedClient struct {
	Username   string `json:"username"`
	ClientID   string `json:"clientid,omitempty"`
	Disabled   bool   `json:"disabled,omitempty"`
	Password   string `json:"password,omitempty"`
	Salt       string `json:"salt,omitempty"`
	Iterations int    `json:"iterations,omitempty"`
}

// storedDocument is the top-level shape of a credential file.
type storedDocument struct {
	Clients []storedClient `json:"clients"`
}

// decodeClient converts a stored record into a Credential. A record
// with neither password nor salt has no password material. Anything
// else that fails to decode, has the wrong material lengths, or
// carries an iteration count below 1 is ErrInvalidRecord.
func decodeClient(sc *storedClient) (*Credential, error) {
	cred := &Credential{
		Username: sc.Username,
		ClientID: sc.ClientID,
		Disabled: sc.Disabled,
	}

	if sc.Password == "" && sc.Salt == "" {
		return cred, nil
	}

	salt, err := codec.Decode(sc.Salt)
	if err != nil {
		return nil, fmt.Errorf("%w: user %q: salt: %v", ErrInvalidRecord, sc.Username, err)
	}
	digest, err := codec.Decode(sc.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: user %q: password: %v", ErrInvalidRecord, sc.Username, err)
	}
	if len(salt) != password.SaltSize {
		return nil, fmt.Errorf("%w: user %q: salt is %d bytes, want %d", ErrInvalidRecord, sc.Username, len(salt), password.SaltSize)
	}
	if len(digest) != password.HashSize {
		return nil, fmt.Errorf("%w: user %q: hash is %d bytes, want %d", ErrInvalidRecord, sc.Username, len(digest), password.HashSize)
	}
	if sc.Iterations < 1 {
		return nil, fmt.Errorf("%w: user %q: iterations %d", ErrInvalidRecord, sc.Username, sc.Iterations)
	}

	cred.Password = &password.Hash{
		Salt:       salt,
		Digest:     digest,
		Iterations: sc.Iterations,
	}
	return cred, nil
}

// encodeClient converts a Credential into its stored form.
func encodeClient(cred *Credential) storedClient {
	sc := storedClient{
		Username: cred.Username,
		ClientID: cred.ClientID,
		Disabled: cred.Disabled,
	}
	if cred.Password != nil {
		sc.Password = codec.Encode(cred.Password.Digest)
		sc.Salt = codec.Encode(cred.Password.Salt)
		sc.Iterations = cred.Password.Iterations
	}
	return sc
}
