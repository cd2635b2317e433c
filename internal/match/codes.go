package match

import "math/rand"

const (
	codeLength = 6

	inviteAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	roomAlphabet   = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

func randomCode(alphabet string) string {
	buf := make([]byte, codeLength)
	for i := range buf {
		buf[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return string(buf)
}

// InviteCode returns a 6-character uppercase alphanumeric invite code.
// Uniqueness among pending invites is enforced by the registry, not here.
func InviteCode() string {
	return randomCode(inviteAlphabet)
}

// RoomID returns a 6-character mixed-case alphanumeric room identifier.
// Collisions among active rooms are accepted as negligible.
func RoomID() string {
	return randomCode(roomAlphabet)
}
