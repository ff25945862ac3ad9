package booking

import "github.com/andray-nkhatel/meeting-room-frontend/pkg/logger"

func init() {
	_ = logger.Initialize(logger.Config{
		Level:       "error",
		Environment: "test",
		ServiceName: "meeting-room-frontend-test",
	})
}
