package judge

import (
	"encoding/hex"
	"encoding/json"

	"golang.org/x/crypto/blake2b"

	"gitlab.com/codejudge.net/internal/domain"
)

// Fingerprint identifies an execution by everything that influences its
// verdict. The language enters as the resolved runtime so aliases share an
// entry and a version change invalidates it. Submission identity and problem
// are excluded.
func Fingerprint(runtime domain.Runtime, submission *domain.Submission) (string, error) {
	h, err := blake2b.New256(nil)
	if err != nil {
		return "", err
	}

	signature, err := json.Marshal(submission.Signature)
	if err != nil {
		return "", err
	}
	tests, err := json.Marshal(submission.TestCases)
	if err != nil {
		return "", err
	}

	for _, part := range [][]byte{
		[]byte(runtime.Key + "@" + runtime.Version),
		[]byte(submission.Code),
		signature,
		tests,
		[]byte(submission.Policy),
	} {
		// length-prefix every part so boundaries cannot shift
		var size [8]byte
		n := len(part)
		for i := range size {
			size[i] = byte(n >> (8 * i))
		}
		h.Write(size[:])
		h.Write(part)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
