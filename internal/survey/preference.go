package survey

// Preference is the channel a respondent leans towards.
type Preference string

const (
	PreferDigital Preference = "Digital"
	PreferOffline Preference = "Offline"
)

// Preferences lists the labels in presentation order.
var Preferences = []Preference{PreferDigital, PreferOffline}

// Classify labels a row Digital when digital intent is at least offline intent.
// Ties go to Digital.
func Classify(r Row) Preference {
	if r.DigitalIntent >= r.OfflineIntent {
		return PreferDigital
	}
	return PreferOffline
}
