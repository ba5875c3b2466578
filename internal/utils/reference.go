package utils

import (
	"fmt"
	"math/rand"
	"time"
)

var refRand = rand.New(rand.NewSource(time.Now().UnixNano()))

// GenerateReference generates a unique reference for purchases and applications
func GenerateReference(prefix string) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, 8)
	for i := range result {
		result[i] = charset[refRand.Intn(len(charset))]
	}

	timestamp := time.Now().Format("20060102")
	return fmt.Sprintf("%s_%s_%s", prefix, timestamp, string(result))
}
