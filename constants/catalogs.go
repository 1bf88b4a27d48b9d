package constants

import (
	"math"

	"github.com/okushigue/zetascan/residue"
)

// CODATA 2018 base values. Scaled variants below bring each constant into
// the magnitude range of the zero ordinates, mirroring how the resonance
// catalogs were originally assembled.
const (
	FineStructureAlpha = 1 / 137.035999084
	PlanckH            = 6.62607015e-34
	LightSpeedC        = 299792458.0
	GravityG           = 6.67430e-11
	BoltzmannK         = 1.380649e-23
	ElementaryCharge   = 1.602176634e-19
	ElectronMass       = 9.1093837015e-31
	ProtonMass         = 1.67262192369e-27
	NeutronMass        = 1.67492749804e-27
	Avogadro           = 6.02214076e23
	StefanBoltzmann    = 5.670374419e-8
	RydbergRInf        = 10973731.568160
	EulerMascheroni    = 0.5772156649
)

var planckHBar = PlanckH / (2 * math.Pi)

func init() {
	Register("fine-structure", FineStructure)
	Register("forces", FundamentalForces)
	Register("planck", Planck)
	Register("light-speed", LightSpeed)
	Register("rydberg", Rydberg)
	Register("spacetime", Spacetime)
	Register("nuclear-cosmic", NuclearCosmic)
	Register("alcubierre", Alcubierre)
}

// FineStructure hunts the fine-structure constant with absolute tolerances.
func FineStructure() *Catalog {
	return &Catalog{
		Name:             "fine-structure",
		Description:      "fine-structure constant vs nearby random moduli",
		Mode:             residue.Absolute,
		Tolerances:       residue.DefaultAbsoluteLevels(),
		DefaultTolerance: 1e-5,
		Constants: []Constant{
			{Name: "fine_structure", Symbol: "α", Value: FineStructureAlpha, Category: CategoryForces},
		},
		Controls: []Constant{
			{Name: "random_1", Value: 1 / 142.7, Category: CategoryControl},
			{Name: "random_2", Value: 1 / 129.3, Category: CategoryControl},
			{Name: "random_3", Value: 1 / 131.2, Category: CategoryControl},
			{Name: "random_4", Value: 1 / 144.8, Category: CategoryControl},
			{Name: "golden_ratio", Symbol: "φ-1", Value: (math.Sqrt(5) - 1) / 2, Category: CategoryMathematical},
			{Name: "pi_scale", Value: math.Pi / 100, Category: CategoryMathematical},
			{Name: "e_scale", Value: math.E / 100, Category: CategoryMathematical},
		},
	}
}

// FundamentalForces is the full 19-constant scanner catalog. Each constant
// carries its own tolerance ladder scaled to its magnitude.
func FundamentalForces() *Catalog {
	ladder := func(top float64) []float64 {
		levels := make([]float64, 6)
		for i := range levels {
			levels[i] = top * math.Pow(10, -float64(i))
		}
		return levels
	}
	return &Catalog{
		Name:             "forces",
		Description:      "fundamental couplings, mass ratios, cosmology and magnetic moments",
		Mode:             residue.Absolute,
		Tolerances:       residue.DefaultAbsoluteLevels(),
		DefaultTolerance: 1e-5,
		Constants: []Constant{
			{Name: "electromagnetic", Symbol: "α", Value: FineStructureAlpha, Category: CategoryForces, Tolerances: ladder(1e-4)},
			{Name: "strong", Symbol: "αs", Value: 0.1185, Category: CategoryForces, Tolerances: ladder(1e-2)},
			{Name: "weak", Symbol: "αW", Value: 0.0338, Category: CategoryForces, Tolerances: ladder(1e-3)},
			{Name: "gravitational", Symbol: "αG", Value: 5.906e-39, Category: CategoryForces, Tolerances: ladder(1e-38)},

			{Name: "weinberg_angle", Symbol: "sin²θW", Value: 0.2312, Category: CategoryElectroweak, Tolerances: ladder(1e-3)},
			{Name: "proton_electron", Symbol: "mp/me", Value: 1836.15267343, Category: CategoryMasses, Tolerances: ladder(1e-1)},
			{Name: "euler_mascheroni", Symbol: "γ", Value: EulerMascheroni, Category: CategoryMathematical, Tolerances: ladder(1e-3)},
			{Name: "fermi_coupling", Symbol: "GF", Value: 1.1663787e-5, Category: CategoryElectroweak, Tolerances: ladder(1e-6)},

			{Name: "muon_electron", Symbol: "mμ/me", Value: 206.7682826, Category: CategoryMasses, Tolerances: ladder(1e-2)},
			{Name: "tau_electron", Symbol: "mτ/me", Value: 3477.15, Category: CategoryMasses, Tolerances: ladder(1e-1)},
			{Name: "neutron_proton", Symbol: "mn/mp", Value: 1.00137841931, Category: CategoryMasses, Tolerances: ladder(1e-4)},

			{Name: "dark_energy", Symbol: "ΩΛ", Value: 0.6847, Category: CategoryCosmology, Tolerances: ladder(1e-3)},
			{Name: "dark_matter", Symbol: "Ωdm", Value: 0.2589, Category: CategoryCosmology, Tolerances: ladder(1e-3)},
			{Name: "baryon_density", Symbol: "Ωb", Value: 0.0486, Category: CategoryCosmology, Tolerances: ladder(1e-4)},
			{Name: "hubble_reduced", Symbol: "h", Value: 0.6736, Category: CategoryCosmology, Tolerances: ladder(1e-3)},
			{Name: "sigma8", Symbol: "σ8", Value: 0.8111, Category: CategoryCosmology, Tolerances: ladder(1e-3)},

			{Name: "gyromagnetic_proton", Symbol: "gp", Value: 2.7928473508, Category: CategoryMagnetic, Tolerances: ladder(1e-2)},
			{Name: "gyromagnetic_neutron", Symbol: "|gn|", Value: 1.9130427, Category: CategoryMagnetic, Tolerances: ladder(1e-2)},
			{Name: "magnetic_moment_ratio", Symbol: "μp/μn", Value: 3.1524512605, Category: CategoryMagnetic, Tolerances: ladder(1e-2)},
		},
		Controls: []Constant{
			{Name: "random_1", Value: 0.1372, Category: CategoryControl},
			{Name: "random_2", Value: 0.7213, Category: CategoryControl},
			{Name: "random_3", Value: 1.9341, Category: CategoryControl},
			{Name: "random_4", Value: 0.0417, Category: CategoryControl},
			{Name: "pi_scale", Value: math.Pi / 10, Category: CategoryMathematical},
		},
	}
}

// Planck hunts scaled multiples of the Planck constant with relative
// tolerances.
func Planck() *Catalog {
	return &Catalog{
		Name:             "planck",
		Description:      "Planck constant at scales matching the zero ordinates",
		Mode:             residue.Relative,
		Tolerances:       residue.DefaultRelativeLevels(),
		DefaultTolerance: 1e-8,
		Constants: []Constant{
			{Name: "planck_30x", Symbol: "h·1e30", Value: 1e30 * PlanckH, Category: CategoryQuantum},
			{Name: "planck_32x", Symbol: "h·1e32", Value: 1e32 * PlanckH, Category: CategoryQuantum},
			{Name: "planck_34x", Symbol: "h·1e34", Value: 1e34 * PlanckH, Category: CategoryQuantum},
			{Name: "planck_35x", Symbol: "h·1e35", Value: 1e35 * PlanckH, Category: CategoryQuantum},
			{Name: "planck_36x", Symbol: "h·1e36", Value: 1e36 * PlanckH, Category: CategoryQuantum},
			{Name: "planck_37x", Symbol: "h·1e37", Value: 1e37 * PlanckH, Category: CategoryQuantum},
			{Name: "planck_hbar_34x", Symbol: "ħ·1e34", Value: 1e34 * planckHBar, Category: CategoryQuantum},
			{Name: "planck_length", Symbol: "lP·1e36", Value: 1.616255e-35 * 1e36, Category: CategoryQuantum},
			{Name: "planck_time", Symbol: "tP·1e45", Value: 5.391247e-44 * 1e45, Category: CategoryQuantum},
			{Name: "planck_mass", Symbol: "mP·1e9", Value: 2.176434e-8 * 1e9, Category: CategoryQuantum},
			{Name: "planck_energy", Symbol: "EP/1e8", Value: 1.956082e9 / 1e8, Category: CategoryQuantum},
		},
		Controls: []Constant{
			{Name: "random_1", Value: 6.5, Category: CategoryControl},
			{Name: "random_2", Value: 6.8, Category: CategoryControl},
			{Name: "random_3", Value: 1.0, Category: CategoryControl},
			{Name: "random_4", Value: 66.5, Category: CategoryControl},
		},
	}
}

// LightSpeed hunts quantities derived from c, normalized into the ordinate
// range.
func LightSpeed() *Catalog {
	gamma := func(beta float64) float64 { return 1 / math.Sqrt(1-beta*beta) }
	electronRest := ElectronMass * LightSpeedC * LightSpeedC
	protonRest := ProtonMass * LightSpeedC * LightSpeedC
	return &Catalog{
		Name:             "light-speed",
		Description:      "speed of light and relativistic derived quantities",
		Mode:             residue.Relative,
		Tolerances:       residue.DefaultRelativeLevels(),
		DefaultTolerance: 1e-8,
		Constants: []Constant{
			{Name: "light_speed", Symbol: "c/1e8", Value: LightSpeedC / 1e8, Category: CategoryRelativity},
			{Name: "light_squared", Symbol: "c²/1e16", Value: LightSpeedC * LightSpeedC / 1e16, Category: CategoryRelativity},
			{Name: "planck_light", Symbol: "hc·1e25", Value: PlanckH * LightSpeedC * 1e25, Category: CategoryQuantum},
			{Name: "electron_energy", Symbol: "mec²·1e14", Value: electronRest * 1e14, Category: CategoryMasses},
			{Name: "proton_energy", Symbol: "mpc²·1e11", Value: protonRest * 1e11, Category: CategoryMasses},
			{Name: "gamma_half_c", Symbol: "γ(0.5c)", Value: gamma(0.5), Category: CategoryRelativity},
			{Name: "gamma_0_9c", Symbol: "γ(0.9c)", Value: gamma(0.9), Category: CategoryRelativity},
			{Name: "gamma_0_99c", Symbol: "γ(0.99c)", Value: gamma(0.99), Category: CategoryRelativity},
			{Name: "time_meter_ns", Symbol: "1m/c (ns)", Value: 1 / LightSpeedC * 1e9, Category: CategoryRelativity},
			{Name: "compton_electron", Symbol: "λC·1e12", Value: PlanckH / (ElectronMass * LightSpeedC) * 1e12, Category: CategoryQuantum},
			{Name: "electron_radius", Symbol: "re·1e15", Value: 2.8179403262e-15 * 1e15, Category: CategoryQuantum},
			{Name: "alpha_scaled", Symbol: "α·1e3", Value: FineStructureAlpha * 1000, Category: CategoryForces},
		},
		Controls: []Constant{
			{Name: "random_1", Value: 2.8, Category: CategoryControl},
			{Name: "random_2", Value: 3.2, Category: CategoryControl},
			{Name: "random_3", Value: 8.5, Category: CategoryControl},
			{Name: "random_4", Value: 15.7, Category: CategoryControl},
		},
	}
}

// Rydberg hunts the Rydberg constant and the hydrogen series factors.
func Rydberg() *Catalog {
	energy := PlanckH * LightSpeedC * RydbergRInf
	return &Catalog{
		Name:             "rydberg",
		Description:      "Rydberg constant and hydrogen spectral series",
		Mode:             residue.Relative,
		Tolerances:       residue.DefaultRelativeLevels(),
		DefaultTolerance: 1e-8,
		Constants: []Constant{
			{Name: "rydberg_scaled", Symbol: "R∞/1e6", Value: RydbergRInf / 1e6, Category: CategoryQuantum},
			{Name: "energy_scaled", Symbol: "Ry·1e18", Value: energy * 1e18, Category: CategoryQuantum},
			{Name: "freq_scaled", Symbol: "cR∞/1e15", Value: LightSpeedC * RydbergRInf / 1e15, Category: CategoryQuantum},
			{Name: "lambda_scaled", Symbol: "1e8/R∞", Value: 1 / RydbergRInf * 1e8, Category: CategoryQuantum},
			{Name: "lyman_series", Value: RydbergRInf * (1 - 1.0/4) / 1e6, Category: CategoryQuantum},
			{Name: "balmer_series", Value: RydbergRInf * (1.0/4 - 1.0/9) / 1e6, Category: CategoryQuantum},
			{Name: "paschen_series", Value: RydbergRInf * (1.0/9 - 1.0/16) / 1e6, Category: CategoryQuantum},
			{Name: "alpha_scaled", Symbol: "α·1e3", Value: FineStructureAlpha * 1000, Category: CategoryForces},
		},
		Controls: []Constant{
			{Name: "random_1", Value: 10.5, Category: CategoryControl},
			{Name: "random_2", Value: 11.3, Category: CategoryControl},
			{Name: "random_3", Value: 8.7, Category: CategoryControl},
			{Name: "random_4", Value: 12.4, Category: CategoryControl},
		},
	}
}

// Spacetime hunts thermodynamic and electromagnetic constants normalized
// into the ordinate range.
func Spacetime() *Catalog {
	gasConstant := BoltzmannK * Avogadro
	const epsilon0 = 8.8541878128e-12
	const mu0 = 1.25663706212e-6
	return &Catalog{
		Name:             "spacetime",
		Description:      "thermodynamic and electromagnetic constants",
		Mode:             residue.Relative,
		Tolerances:       residue.DefaultRelativeLevels(),
		DefaultTolerance: 1e-8,
		Constants: []Constant{
			{Name: "boltzmann", Symbol: "kB·1e23", Value: BoltzmannK * 1e23, Category: CategoryThermo},
			{Name: "stefan_boltzmann", Symbol: "σ·1e8", Value: StefanBoltzmann * 1e8, Category: CategoryThermo},
			{Name: "gas_constant", Symbol: "R/10", Value: gasConstant / 10, Category: CategoryThermo},
			{Name: "avogadro", Symbol: "NA/1e23", Value: Avogadro / 1e23, Category: CategoryThermo},
			{Name: "thermal_room", Symbol: "kB·300K·1e21", Value: BoltzmannK * 300 * 1e21, Category: CategoryThermo},
			{Name: "elem_charge", Symbol: "e·1e19", Value: ElementaryCharge * 1e19, Category: CategoryQuantum},
			{Name: "epsilon_0", Symbol: "ε0·1e12", Value: epsilon0 * 1e12, Category: CategoryQuantum},
			{Name: "mu_0", Symbol: "μ0·1e7", Value: mu0 * 1e7, Category: CategoryQuantum},
			{Name: "impedance_vac", Symbol: "Z0/10", Value: math.Sqrt(mu0/epsilon0) / 10, Category: CategoryQuantum},
			{Name: "electron_mass", Symbol: "me·1e31", Value: ElectronMass * 1e31, Category: CategoryMasses},
			{Name: "proton_mass", Symbol: "mp·1e27", Value: ProtonMass * 1e27, Category: CategoryMasses},
			{Name: "neutron_mass", Symbol: "mn·1e27", Value: NeutronMass * 1e27, Category: CategoryMasses},
			{Name: "thermal_voltage", Symbol: "kBT/e", Value: BoltzmannK * 300 / ElementaryCharge, Category: CategoryThermo},
		},
		Controls: []Constant{
			{Name: "random_1", Value: 1.45, Category: CategoryControl},
			{Name: "random_2", Value: 5.9, Category: CategoryControl},
			{Name: "random_3", Value: 0.87, Category: CategoryControl},
			{Name: "random_4", Value: 6.3, Category: CategoryControl},
		},
	}
}

// NuclearCosmic hunts nuclear couplings, standard-model masses and
// cosmological parameters, all scaled into the ordinate range.
func NuclearCosmic() *Catalog {
	return &Catalog{
		Name:             "nuclear-cosmic",
		Description:      "nuclear couplings, standard-model masses and cosmology",
		Mode:             residue.Relative,
		Tolerances:       residue.DefaultRelativeLevels(),
		DefaultTolerance: 1e-8,
		Constants: []Constant{
			{Name: "strong_force", Symbol: "αs·100", Value: 0.118 * 100, Category: CategoryForces},
			{Name: "weak_force", Symbol: "GF·1e5", Value: 1.1663787e-5 * 1e5, Category: CategoryForces},
			{Name: "qcd_scale", Symbol: "ΛQCD·10", Value: 0.217 * 10, Category: CategoryForces},
			{Name: "weinberg_angle", Symbol: "sin²θW·100", Value: 0.23122 * 100, Category: CategoryElectroweak},
			{Name: "strong_em_ratio", Symbol: "αs/α", Value: 0.118 / FineStructureAlpha, Category: CategoryForces},
			{Name: "higgs_mass", Symbol: "mH/10", Value: 125.1 / 10, Category: CategoryMasses},
			{Name: "w_boson", Symbol: "mW/10", Value: 80.379 / 10, Category: CategoryMasses},
			{Name: "z_boson", Symbol: "mZ/10", Value: 91.1876 / 10, Category: CategoryMasses},
			{Name: "top_quark", Symbol: "mt/10", Value: 173.1 / 10, Category: CategoryMasses},
			{Name: "electroweak", Symbol: "vev/10", Value: 246.0 / 10, Category: CategoryElectroweak},
			{Name: "hubble", Symbol: "H0·1e18", Value: 2.268e-18 * 1e18, Category: CategoryCosmology},
			{Name: "cmb_temp", Symbol: "TCMB", Value: 2.72548, Category: CategoryCosmology},
			{Name: "omega_matter", Symbol: "Ωm·10", Value: 0.315 * 10, Category: CategoryCosmology},
			{Name: "omega_lambda", Symbol: "ΩΛ·10", Value: 0.685 * 10, Category: CategoryCosmology},
			{Name: "omega_baryon", Symbol: "Ωb·100", Value: 0.0493 * 100, Category: CategoryCosmology},
		},
		Controls: []Constant{
			{Name: "random_1", Value: 11.2, Category: CategoryControl},
			{Name: "random_2", Value: 2.5, Category: CategoryControl},
			{Name: "random_3", Value: 23.9, Category: CategoryControl},
			{Name: "random_4", Value: 8.8, Category: CategoryControl},
		},
	}
}

// Alcubierre hunts the shape factors of the warp metric. The catalog exists
// as a deliberately fanciful control group: its "constants" are arbitrary
// geometry factors, so strong resonances here would indict the method.
func Alcubierre() *Catalog {
	const rPlanck = 1.616e-35
	const rhoNuclear = 2.3e17
	warpVelocity := 10 * LightSpeedC
	return &Catalog{
		Name:             "alcubierre",
		Description:      "warp metric shape factors (method control group)",
		Mode:             residue.Relative,
		Tolerances:       residue.DefaultRelativeLevels(),
		DefaultTolerance: 1e-8,
		Constants: []Constant{
			{Name: "alcubierre_vel", Symbol: "10c/1e8", Value: warpVelocity / 1e8, Category: CategoryRelativity},
			{Name: "warp_geometry", Symbol: "tanh(1)·10", Value: math.Tanh(1) * 10, Category: CategoryMathematical},
			{Name: "exotic_density", Symbol: "ρn/1e15", Value: rhoNuclear / 1e15, Category: CategoryRelativity},
			{Name: "warp_efficiency", Symbol: "100/(4π)", Value: 100 / (4 * math.Pi), Category: CategoryMathematical},
			{Name: "expansion_factor", Symbol: "10·√(2/π)", Value: 10 * math.Sqrt(2/math.Pi), Category: CategoryMathematical},
			{Name: "causality_limit", Symbol: "100/(2π)", Value: 100 / (2 * math.Pi), Category: CategoryMathematical},
			{Name: "shape_function", Symbol: "1/(1+e)", Value: 1 / (1 + math.E), Category: CategoryMathematical},
			{Name: "theta_factor", Symbol: "sech²(1)", Value: 1 / (math.Cosh(1) * math.Cosh(1)), Category: CategoryMathematical},
			{Name: "planck_ratio", Symbol: "hc/R·1e-8", Value: PlanckH * LightSpeedC / rPlanck / 1e8, Category: CategoryQuantum},
		},
		Controls: []Constant{
			{Name: "random_1", Value: 25.5, Category: CategoryControl},
			{Name: "random_2", Value: 31.8, Category: CategoryControl},
			{Name: "random_3", Value: 7.2, Category: CategoryControl},
			{Name: "random_4", Value: 150.0, Category: CategoryControl},
		},
	}
}
