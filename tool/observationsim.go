package tool

func observationSimDeps() []string {
	return []string{
		"facilitiesLib",
		"tipLib",
		"astroLib",
		"fluxLib",
		"st_facilitiesLib",
		"celestialSourcesLib",
		"irfsLib",
		"dataSubselectorLib",
		"fitsGenLib",
	}
}

// ObservationSim registers the observationSim library without grouping metadata.
var ObservationSim = Descriptor{
	Name:   "observationSimLib",
	Target: "observationSim",
	Deps:   observationSimDeps(),
}

// ObservationSimPackaged is ObservationSim grouped under the observationSim package.
var ObservationSimPackaged = ObservationSim.WithPackage("observationSim")
