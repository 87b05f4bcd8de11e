package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetMockDBInstallsSingleton(t *testing.T) {
	gormDB, _ := GetMockDB()

	assert.Equal(t, gormDB, GetDb())
	assert.Equal(t, "postgres", gormDB.Name())
}
