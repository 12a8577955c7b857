package memory

import (
	"time"

	"github.com/gridrivals/fantasy-motorsport/internal/domain/constructor"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/participant"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/race"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/rider"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/settings"
)

const (
	ConstructorIDDucati  = "ctr-ducati"
	ConstructorIDAprilia = "ctr-aprilia"
	ConstructorIDKTM     = "ctr-ktm"
	ConstructorIDYamaha  = "ctr-yamaha"
	ConstructorIDHonda   = "ctr-honda"
)

func SeedConstructors() []constructor.Constructor {
	return []constructor.Constructor{
		{ID: ConstructorIDDucati, Name: "Ducati", Price: 320, InitialPrice: 320},
		{ID: ConstructorIDAprilia, Name: "Aprilia", Price: 250, InitialPrice: 250},
		{ID: ConstructorIDKTM, Name: "KTM", Price: 240, InitialPrice: 240},
		{ID: ConstructorIDYamaha, Name: "Yamaha", Price: 200, InitialPrice: 200},
		{ID: ConstructorIDHonda, Name: "Honda", Price: 170, InitialPrice: 170},
	}
}

func SeedRiders() []rider.Rider {
	return []rider.Rider{
		{ID: "rdr-01", Name: "Marc Marquez", Team: "Ducati", Bike: "Desmosedici GP26", Price: 380, InitialPrice: 380, ConstructorID: ConstructorIDDucati, IsOfficial: true},
		{ID: "rdr-02", Name: "Francesco Bagnaia", Team: "Ducati", Bike: "Desmosedici GP26", Price: 360, InitialPrice: 360, ConstructorID: ConstructorIDDucati, IsOfficial: true},
		{ID: "rdr-03", Name: "Jorge Martin", Team: "Aprilia", Bike: "RS-GP26", Price: 330, InitialPrice: 330, ConstructorID: ConstructorIDAprilia, IsOfficial: true},
		{ID: "rdr-04", Name: "Marco Bezzecchi", Team: "Aprilia", Bike: "RS-GP26", Price: 290, InitialPrice: 290, ConstructorID: ConstructorIDAprilia, IsOfficial: true},
		{ID: "rdr-05", Name: "Pedro Acosta", Team: "KTM", Bike: "RC16", Price: 300, InitialPrice: 300, ConstructorID: ConstructorIDKTM, IsOfficial: true},
		{ID: "rdr-06", Name: "Brad Binder", Team: "KTM", Bike: "RC16", Price: 220, InitialPrice: 220, ConstructorID: ConstructorIDKTM, IsOfficial: true},
		{ID: "rdr-07", Name: "Fabio Quartararo", Team: "Yamaha", Bike: "YZR-M1", Price: 260, InitialPrice: 260, ConstructorID: ConstructorIDYamaha, IsOfficial: true},
		{ID: "rdr-08", Name: "Alex Rins", Team: "Yamaha", Bike: "YZR-M1", Price: 150, InitialPrice: 150, ConstructorID: ConstructorIDYamaha, IsOfficial: true},
		{ID: "rdr-09", Name: "Joan Mir", Team: "Honda", Bike: "RC213V", Price: 140, InitialPrice: 140, ConstructorID: ConstructorIDHonda, IsOfficial: true},
		{ID: "rdr-10", Name: "Luca Marini", Team: "Honda", Bike: "RC213V", Price: 130, InitialPrice: 130, ConstructorID: ConstructorIDHonda, IsOfficial: true},
		{ID: "rdr-11", Name: "Fermin Aldeguer", Team: "Gresini Racing", Bike: "Desmosedici GP25", Price: 210, InitialPrice: 210, ConstructorID: ConstructorIDDucati},
		{ID: "rdr-12", Name: "Alex Marquez", Team: "Gresini Racing", Bike: "Desmosedici GP25", Price: 240, InitialPrice: 240, ConstructorID: ConstructorIDDucati},
		{ID: "rdr-13", Name: "Fabio Di Giannantonio", Team: "VR46 Racing", Bike: "Desmosedici GP25", Price: 200, InitialPrice: 200, ConstructorID: ConstructorIDDucati},
		{ID: "rdr-14", Name: "Franco Morbidelli", Team: "VR46 Racing", Bike: "Desmosedici GP25", Price: 170, InitialPrice: 170, ConstructorID: ConstructorIDDucati},
		{ID: "rdr-15", Name: "Enea Bastianini", Team: "Tech3", Bike: "RC16", Price: 160, InitialPrice: 160, ConstructorID: ConstructorIDKTM},
		{ID: "rdr-16", Name: "Maverick Vinales", Team: "Tech3", Bike: "RC16", Price: 150, InitialPrice: 150, ConstructorID: ConstructorIDKTM, Condition: "injured"},
		{ID: "rdr-17", Name: "Jack Miller", Team: "Pramac Yamaha", Bike: "YZR-M1", Price: 130, InitialPrice: 130, ConstructorID: ConstructorIDYamaha},
		{ID: "rdr-18", Name: "Miguel Oliveira", Team: "Pramac Yamaha", Bike: "YZR-M1", Price: 120, InitialPrice: 120, ConstructorID: ConstructorIDYamaha},
		{ID: "rdr-19", Name: "Johann Zarco", Team: "LCR Honda", Bike: "RC213V", Price: 140, InitialPrice: 140, ConstructorID: ConstructorIDHonda},
		{ID: "rdr-20", Name: "Somkiat Chantra", Team: "LCR Honda", Bike: "RC213V", Price: 90, InitialPrice: 90, ConstructorID: ConstructorIDHonda},
	}
}

func SeedRaces() []race.Race {
	return []race.Race{
		{ID: "rc-01", Round: 1, GPName: "Thailand GP", Location: "Buriram", RaceDate: time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)},
		{ID: "rc-02", Round: 2, GPName: "Argentina GP", Location: "Termas de Rio Hondo", RaceDate: time.Date(2026, 3, 15, 18, 0, 0, 0, time.UTC)},
		{ID: "rc-03", Round: 3, GPName: "Americas GP", Location: "Austin", RaceDate: time.Date(2026, 3, 29, 19, 0, 0, 0, time.UTC)},
		{ID: "rc-04", Round: 4, GPName: "Qatar GP", Location: "Lusail", RaceDate: time.Date(2026, 4, 12, 17, 0, 0, 0, time.UTC)},
		{ID: "rc-05", Round: 5, GPName: "Spanish GP", Location: "Jerez", RaceDate: time.Date(2026, 4, 26, 12, 0, 0, 0, time.UTC)},
		{ID: "rc-06", Round: 6, GPName: "French GP", Location: "Le Mans", RaceDate: time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)},
		{ID: "rc-07", Round: 7, GPName: "Italian GP", Location: "Mugello", RaceDate: time.Date(2026, 5, 24, 12, 0, 0, 0, time.UTC)},
		{ID: "rc-08", Round: 8, GPName: "Catalan GP", Location: "Barcelona", RaceDate: time.Date(2026, 6, 7, 12, 0, 0, 0, time.UTC)},
	}
}

func SeedParticipants() []participant.Participant {
	return []participant.Participant{
		{ID: "ppt-01", Name: "Box Box Racing", JoinedAt: time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)},
		{ID: "ppt-02", Name: "Slipstream Kings", JoinedAt: time.Date(2026, 2, 11, 14, 30, 0, 0, time.UTC)},
		{ID: "ppt-03", Name: "Late Brakers", JoinedAt: time.Date(2026, 2, 12, 20, 15, 0, 0, time.UTC)},
		{ID: "ppt-04", Name: "Highside Heroes", JoinedAt: time.Date(2026, 2, 14, 8, 45, 0, 0, time.UTC)},
	}
}

func SeedSettings() settings.LeagueSettings {
	return settings.LeagueSettings{
		MarketDeadline: time.Date(2026, 11, 15, 23, 59, 0, 0, time.UTC),
	}
}
