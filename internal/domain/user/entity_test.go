package user

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUser_SetPassword_HashesAndVerifies(t *testing.T) {
	req := require.New(t)

	u := &User{Username: "alice", Email: "alice@example.com"}
	err := u.SetPassword("s3nha-secreta")
	req.NoError(err)

	// O hash nunca guarda a senha em claro
	req.NotEqual("s3nha-secreta", u.Password)
	req.NotEmpty(u.Password)

	req.True(u.CheckPassword("s3nha-secreta"))
	req.False(u.CheckPassword("outra-senha"))
	req.False(u.CheckPassword(""))
}

func TestUser_CheckPassword_EmptyHash(t *testing.T) {
	u := &User{}
	require.False(t, u.CheckPassword("qualquer"))
}
