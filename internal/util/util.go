package util

import (
	"moneymaster-server/pkg/token"
)

// RandomUserID generates a random opaque user identifier
func RandomUserID() string {
	id, err := token.Generate(10)
	if err != nil {
		panic(err)
	}

	return "t2_" + id
}
