package dashboard

import "math"

// AttendanceRate is present/total as a percentage rounded to one decimal, 0 when total is 0.
func AttendanceRate(present, total int64) float64 {
	if total <= 0 {
		return 0
	}
	rate := float64(present) / float64(total) * 100
	return math.Round(rate*10) / 10
}
