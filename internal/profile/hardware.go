package profile

import "sunswarm/internal/model"

var hardwareCatalog = map[model.HardwareClass]model.HardwareSpec{
	model.HardwareESP32: {
		Class:          model.HardwareESP32,
		CapacityWh:     1.5,
		IdlePowerW:     0.1,
		MaxSolarInputW: 2.0,
	},
	model.HardwareRaspberryPi4: {
		Class:          model.HardwareRaspberryPi4,
		CapacityWh:     11.1,
		IdlePowerW:     2.5,
		MaxSolarInputW: 20.0,
	},
	model.HardwareJetsonNano: {
		Class:          model.HardwareJetsonNano,
		CapacityWh:     20.0,
		IdlePowerW:     5.0,
		MaxSolarInputW: 40.0,
	},
}

// AllHardware returns the hardware classes available for assignment.
func AllHardware() []model.HardwareClass {
	return []model.HardwareClass{
		model.HardwareESP32,
		model.HardwareRaspberryPi4,
		model.HardwareJetsonNano,
	}
}

// HardwareSpecFor returns the fixed specification for a hardware class.
// Unknown classes fall back to the Raspberry Pi 4 spec so a stray class name
// in configuration cannot abort the simulation.
func HardwareSpecFor(class model.HardwareClass) model.HardwareSpec {
	if spec, ok := hardwareCatalog[class]; ok {
		return spec
	}
	return hardwareCatalog[model.HardwareRaspberryPi4]
}
