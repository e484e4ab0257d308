package utils

import (
	"time"
)

// FormatEpoch 将秒级时间戳按给定格式和时区渲染
func FormatEpoch(epoch int64, layout string, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return time.Unix(epoch, 0).In(loc).Format(layout)
}
