package content

import "time"

const defaultBiography = "Michael Rodenkirch is a drummer, arranger, composer, and educator based in Portland, OR. " +
	"He graduated from the University of North Texas in the winter of 2024 with a Bachelor of Arts degree in Music with a minor in History. " +
	"Michael has a plethora of playing experience playing anything from musicals to playing jazz festivals. " +
	"He has studied with many great musicians including Alan Jones, Quincy Davis, Richard DeRosa, and Chuck Israels. " +
	"Since graduating, Michael has played as a member of the Chuck Israels trio and the Chuck Israels Orchestra. " +
	"Through that experience and others, Michael has shared the stage playing with Portland legends such as Randy Porter, Joe Bagg, David Evans, Paul Mazzio, George Colligan, Darrell Grant, Kerry Politzer, Quinn Walker, Kiran Raphael, Wyatt Button, David Barber, and many more. " +
	"As an educator, Michael has taught private lessons for 8 years. " +
	"He teaches drum set, piano, guitar, music theory, and composition. " +
	"He currently teaches at Lakeridge High School and Grant High School as a rhythm section coach."

// timestampLayout matches what browsers produce for Date.toISOString.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// DefaultPayload is served when the remote source is disabled or failing.
func DefaultPayload() Payload {
	return defaultPayloadAt(time.Now())
}

func defaultPayloadAt(now time.Time) Payload {
	return Payload{
		Biography: Biography{Text: defaultBiography},
		Discography: []Album{
			{Title: "Live at the Churchill School", Year: "2021", Association: "Rob Scheps and the TBA Band"},
			{Title: "Just Us, Just We", Year: "2021", Association: "Shaymus Hanlin Quartet"},
			{Title: "M.J. LIVE! Volume 2 (Trio Sessions)", Year: "2023", Association: "M.J. Johnston"},
			{Title: "Introducing the Jonathan Arcangel Quartet", Year: "2023", Association: "Jonathan Arcangel"},
			{Title: "The Stuff of Dreams", Year: "2024", Association: "M.J. Johnston"},
			{Title: "Live at Blue Butler", Year: "2025", Association: "Wyatt Button"},
		},
		Events: []Event{
			{Title: "SUNDAY AFTERNOON JAZZ", Location: "FOXTROT", Date: "JULY 13", Time: "4PM"},
			{Title: "SHAYMUS HAMLIN QUARTET", Location: "1905", Date: "AUGUST 15", Time: "10:15PM"},
		},
		Videos: []Video{
			{ID: "zpt7ffA5-Wc", Title: "Drum Set senior recital Mixed"},
			{ID: "6dyFDNnSiY4", Title: "Laverne Walk"},
			{ID: "11KM_ZOdqhA", Title: "White Christmas - The Rob Scheps Quartet"},
			{ID: "BOV5sTbQxkQ", Title: "Para Volar"},
			{ID: "P2xUt77qvDI", Title: "Lullaby in Blue (Concert Choir); MWC Concert"},
			{ID: "aOg7lmnAd5E", Title: "The Song Is You"},
		},
		Timestamp: now.UTC().Format(timestampLayout),
	}
}
