package cmd

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	DepotLatitude  string
	DepotLongitude string
	DepotAddress   string
	DepotRadiusKm  string

	// ExclusionZones is a JSON array of named polygons:
	// [{"name":"airport perimeter","polygon":[[lat,lon],[lat,lon],[lat,lon]]}]
	ExclusionZones string

	OrsBaseURL string
	OrsAPIKey  string
	OrsProfile string
	OrsTimeout string

	StaleRouteMaxAge string
}
