package util

import "time"

const timeFormat = "2006-01-02 15:04:05"

func TimeFormat(t time.Time) string {
	if TimeToUnix(t) == 0 {
		return ""
	}
	return t.Format(timeFormat)
}

func TimeToUnix(t time.Time) int64 {
	if t.Unix() > 0 {
		return t.Unix()
	}
	return 0
}
