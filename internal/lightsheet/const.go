package lightsheet

const (
	Ensemble        = 10
	OTFRes          = 256
	PolarizationDef = PolU
	Anisotropy      = 0.4
	SheetOpeningDeg = 5
	SNR             = 20
	OutDir          = "out"
	GIFDelay        = 5 // 100ths of a second per frame
	Gamma           = 1.0
	NumShards       = 64 // power of two; slab locks for ensemble accumulation
	PlotFile        = "mtf_profiles.png"
	MetadataFile    = "data.json"
	// cos(theta) at or below this is a grazing ray with no weight in the
	// diffraction integral
	grazingCos = 1e-9
	// anisotropy values the excitation model understands
	anisotropyIsotropic = 0.0
	anisotropyPolarized = 0.4
)
