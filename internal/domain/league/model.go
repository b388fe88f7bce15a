package league

// League is competition metadata from the sports-data provider.
type League struct {
	ID            string
	Name          string
	Sport         string
	AlternateName string
	Country       string
	BadgeURL      string
	CurrentSeason string
}
