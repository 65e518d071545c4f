// internal/regmap/registers.go
package regmap

// RDZ HMI register map.
// Addresses are protocol-locked and MUST NOT be configurable.

// ---- PER-ZONE SCALAR BLOCKS (64 zones, 1 register per zone) ----

const (
	TemperatureStart = 2700
	TemperatureCount = 64

	WinterSetpointStart = 300
	WinterSetpointCount = 64

	SummerSetpointStart = 364
	SummerSetpointCount = 64

	CalculatedSetpointStart = 2764
	CalculatedSetpointCount = 64

	HumidityStart = 7701
	HumidityCount = 64

	DehumidificationSetpointStart = 428
	DehumidificationSetpointCount = 64

	DewPointStart = 2828
	DewPointCount = 64

	ZoneModeStart = 5301
	ZoneModeCount = 64
)

// ---- PER-ZONE BITMASK BLOCKS (4 registers, 16 zones per register) ----

const (
	ActivityStart = 2892
	ActivityCount = 4

	HumidityRequestStart = 2896
	HumidityRequestCount = 4

	VentilationRequestStart = 2900
	VentilationRequestCount = 4

	RenewalRequestStart = 2904
	RenewalRequestCount = 4

	IntegrationRequestStart = 2908
	IntegrationRequestCount = 4

	DehumidificationPumpStart = 2912
	DehumidificationPumpCount = 4
)

// ---- SYSTEM-LEVEL BLOCKS (systems are 1-based, 1..8) ----

const (
	SystemActivationCoilStart = 100
	SystemActivationCoilCount = 8

	DeliveryWaterTempStart = 2650
	DeliveryWaterTempCount = 8

	CalculatedWaterTempStart = 2658
	CalculatedWaterTempCount = 8

	// PumpActive is a single register; bit 0 = pump 1 .. bit 7 = pump 8.
	PumpActive = 7615
)

// ---- SINGLETONS ----

const (
	OutsideTemp = 2600

	// SeasonCoil: 0 = winter, 1 = summer.
	SeasonCoil = 2
)

// ---- TIME SETTINGS (5 positional registers) ----

const (
	TimeDay    = 5009
	TimeMonth  = 5010
	TimeYear   = 5011
	TimeHour   = 5012
	TimeMinute = 5013

	TimeCount = 5
)

// Scale is the fixed-point factor for temperature/humidity-like quantities.
const Scale = 10.0

// ZoneCount is the size of the dense zone id space.
const ZoneCount = 64

// SystemCount is the number of hydraulic systems.
const SystemCount = 8
