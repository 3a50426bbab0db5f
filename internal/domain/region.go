package domain

// Regiões do Brasil
const (
	RegionNorth      = "Norte"
	RegionNortheast  = "Nordeste"
	RegionCenterWest = "Centro-Oeste"
	RegionSoutheast  = "Sudeste"
	RegionSouth      = "Sul"
)

// Regions na ordem usada em legendas
var Regions = []string{RegionNorth, RegionNortheast, RegionCenterWest, RegionSoutheast, RegionSouth}

// StateRegions mapeia a sigla da UF para a região
var StateRegions = map[string]string{
	"AC": RegionNorth,
	"AM": RegionNorth,
	"AP": RegionNorth,
	"PA": RegionNorth,
	"RO": RegionNorth,
	"RR": RegionNorth,
	"TO": RegionNorth,

	"AL": RegionNortheast,
	"BA": RegionNortheast,
	"CE": RegionNortheast,
	"MA": RegionNortheast,
	"PB": RegionNortheast,
	"PE": RegionNortheast,
	"PI": RegionNortheast,
	"RN": RegionNortheast,
	"SE": RegionNortheast,

	"DF": RegionCenterWest,
	"GO": RegionCenterWest,
	"MS": RegionCenterWest,
	"MT": RegionCenterWest,

	"ES": RegionSoutheast,
	"MG": RegionSoutheast,
	"RJ": RegionSoutheast,
	"SP": RegionSoutheast,

	"PR": RegionSouth,
	"RS": RegionSouth,
	"SC": RegionSouth,
}
