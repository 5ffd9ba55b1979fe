package software

// Actor identifies who ran a setup.
type Actor struct {
	// Hostname is the machine the setup ran on.
	Hostname string `yaml:"hostname"`
	// Username is the system user that started the setup.
	Username string `yaml:"username"`
}
