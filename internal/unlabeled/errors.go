package unlabeled

import "errors"

var (
	errNoSolutionUnlabeled = errors.New("unlabeled: agents did not reach their goals within the timestep budget")
	errTimedOutUnlabeled   = errors.New("unlabeled: computation time budget exceeded")
)
