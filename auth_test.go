package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStaticVerifier(t *testing.T) {
	v := NewStaticVerifier("s3cret")

	assert.True(t, v.Verify("s3cret"))
	assert.False(t, v.Verify("s3cret "))
	assert.False(t, v.Verify(""))
	assert.False(t, v.Verify("S3CRET"))
}

func TestStaticVerifierDefaultSecret(t *testing.T) {
	v := NewStaticVerifier("")

	assert.True(t, v.Verify(DefaultAdminSecret))
	assert.False(t, v.Verify("letmein"))
}
