package engine

// Names of the podman Ansible modules each task kind invokes.
const (
	ContainerModule = "containers.podman.podman_container"
	NetworkModule   = "containers.podman.podman_network"
	PodModule       = "containers.podman.podman_pod"
	SecretModule    = "containers.podman.podman_secret"
	VolumeModule    = "containers.podman.podman_volume"
)

// Lifecycle states accepted from the caller. "present" and "started"
// are creation states, "absent" tears down.
const (
	StatePresent = "present"
	StateStarted = "started"
	StateAbsent  = "absent"
)

// Policies for secrets that already exist on the target.
const (
	SecretSkipExisting = "skip_existing"
	SecretForce        = "force"
)

const (
	buildCmd = "podman build" // "buildah build" would also work

	defaultRegistry = "docker.io"
	defaultLibrary  = "library"

	linkedNetworkPrefix = "nw-"
)

// stateActions maps a lifecycle state to the verb used in task names.
var stateActions = map[string]string{
	StatePresent: "deploy",
	StateStarted: "deploy",
	StateAbsent:  "destroy",
}

// Rename tables: Compose option keys transferred verbatim (modulo
// renaming) into the corresponding podman module parameters. Keys not
// listed here are either handled specially by the extractor or end up
// under "unhandled".
var (
	volumeSame  = map[string]string{}
	networkSame = map[string]string{}

	containerSame = map[string]string{
		"ports":        "ports",
		"image":        "image",
		"command":      "command",
		"hostname":     "hostname",
		"volumes":      "volumes",
		"volumes_from": "volumes_from",
		"restart":      "restart_policy",
		"secrets":      "secrets",
		"shm_size":     "shm_size",
	}
)

// IsCreateState reports whether the state deploys rather than destroys.
func IsCreateState(state string) bool {
	return state != StateAbsent
}

// ValidState reports whether the given lifecycle state is recognized.
func ValidState(state string) bool {
	_, ok := stateActions[state]
	return ok
}
