package service

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// passwordCost is the bcrypt work factor for new hashes.
var passwordCost = bcrypt.DefaultCost

var (
	dummyOnce sync.Once
	dummy     []byte
)

func hashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), passwordCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// burnCompare spends the same time as a real comparison so unknown
// usernames cannot be told apart from wrong passwords by latency.
func burnCompare(plain string) {
	dummyOnce.Do(func() {
		dummy, _ = bcrypt.GenerateFromPassword([]byte("inventory-placeholder"), passwordCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummy, []byte(plain))
}
