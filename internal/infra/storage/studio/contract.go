package studio

import (
	"github.com/studiokita/booking-service/pkg/dbmetrics"
)

type DBExecutor = dbmetrics.DBExecutor
