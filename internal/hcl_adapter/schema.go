package hcl_adapter

// fileRoot decodes all top-level blocks a release config file may contain.
// Every block is optional per file; a release may be split across files.
type fileRoot struct {
	Release   *releaseBlock    `hcl:"release,block"`
	Platforms []*platformBlock `hcl:"platform,block"`
	Sdist     *sdistBlock      `hcl:"sdist,block"`
	Submitter *submitterBlock  `hcl:"submitter,block"`
	Builder   *builderBlock    `hcl:"builder,block"`
	Storage   *storageBlock    `hcl:"storage,block"`
	Status    *statusBlock     `hcl:"status,block"`
}

type releaseBlock struct {
	Project  string   `hcl:"project"`
	Branch   string   `hcl:"branch,optional"`
	Runtimes []string `hcl:"runtimes"`
	Toolkits []string `hcl:"toolkits"`
	Package  string   `hcl:"package,optional"`
	Version  string   `hcl:"version,optional"`
}

type platformBlock struct {
	Name        string `hcl:"name,label"`
	BuildScript string `hcl:"build_script"`
	Project     string `hcl:"project,optional"`
}

type sdistBlock struct {
	Enabled     *bool  `hcl:"enabled,optional"`
	BuildScript string `hcl:"build_script"`
	Runtime     string `hcl:"runtime,optional"`
	Project     string `hcl:"project,optional"`
}

type submitterBlock struct {
	Command     []string `hcl:"command"`
	ProjectFlag string   `hcl:"project_flag,optional"`
	CommandFlag string   `hcl:"command_flag,optional"`
}

type builderBlock struct {
	Command []string          `hcl:"command"`
	Env     map[string]string `hcl:"env,optional"`
}

type storageBlock struct {
	Bucket        string   `hcl:"bucket"`
	Prefix        string   `hcl:"prefix,optional"`
	CopyCommand   []string `hcl:"copy_command,optional"`
	Artifacts     []string `hcl:"artifacts,optional"`
	JobIDEnv      string   `hcl:"job_id_env,optional"`
	JobIDFallback string   `hcl:"job_id_fallback,optional"`
}

type statusBlock struct {
	Command []string `hcl:"command"`
}
