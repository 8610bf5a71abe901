package ops

import (
	"time"

	"github.com/google/uuid"
)

// SystemHealthLog is one sampler tick: host memory/cpu plus database
// reachability at the time of the sample.
type SystemHealthLog struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Status      string    `gorm:"not null;column:status" json:"status"`
	DBStatus    string    `gorm:"not null;column:db_status" json:"db_status"`
	MemoryUsage float64   `gorm:"not null;column:memory_usage" json:"memory_usage"`
	CPUUsage    float64   `gorm:"not null;column:cpu_usage" json:"cpu_usage"`
	Timestamp   time.Time `gorm:"not null;index;column:timestamp" json:"timestamp"`
}

func (SystemHealthLog) TableName() string { return "system_health_log" }
