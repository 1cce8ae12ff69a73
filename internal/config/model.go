package config

// File is the format-agnostic content of a configuration file.
type File struct {
	Coast *Coast `hcl:"coast,block" yaml:"coast"`

	Workers                   *int    `hcl:"workers,optional" yaml:"workers"`
	Backup                    *bool   `hcl:"backup,optional" yaml:"backup"`
	Overwrite                 *bool   `hcl:"overwrite,optional" yaml:"overwrite"`
	KeepIntermediateArtifacts *bool   `hcl:"keep_intermediate_artifacts,optional" yaml:"keep_intermediate_artifacts"`
	ScratchDir                *string `hcl:"scratch_dir,optional" yaml:"scratch_dir"`
	MetricsFile               *string `hcl:"metrics_file,optional" yaml:"metrics_file"`

	Verbose   *bool   `hcl:"verbose,optional" yaml:"verbose"`
	LogLevel  *string `hcl:"log_level,optional" yaml:"log_level"`
	LogFormat *string `hcl:"log_format,optional" yaml:"log_format"`
}

// Coast is the `coast` block.
type Coast struct {
	Distance            *float64 `hcl:"distance,optional" yaml:"distance"`
	PrimePillarDistance *float64 `hcl:"prime_pillar_distance,optional" yaml:"prime_pillar_distance"`
	MinExtrusionLength  *float64 `hcl:"min_extrusion_length,optional" yaml:"min_extrusion_length"`
	ExtrusionMode       *string  `hcl:"extrusion_mode,optional" yaml:"extrusion_mode"`
}
