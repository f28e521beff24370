package arabic

import "fmt"

// FormatDelay renders a delay in minutes as the Arabic label shown in
// reports. Zero means the student arrived on time; an hour or more always
// takes the two-part hour-and-minute form, even on a whole hour.
func FormatDelay(minutes int) string {
	if minutes <= 0 {
		return "منضبط"
	}
	if minutes < 60 {
		return fmt.Sprintf("%d دقيقة", minutes)
	}
	return fmt.Sprintf("%d س و %d د", minutes/60, minutes%60)
}
