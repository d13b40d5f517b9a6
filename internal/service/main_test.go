package service_test

import (
	"testing"

	"github.com/limbo/exercise-tracker/internal/service"
)

func TestMain(m *testing.M) {
	service.InitValidator()
	m.Run()
}
