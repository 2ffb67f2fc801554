package constants

// Staff role short names, grouped into the policy lists that gate each
// endpoint. A user passes a gate when any of their roles is in the list.

var (
	SeniorStaff = []string{
		RoleATM,
		RoleDATM,
		RoleTA,
		RoleWM,
	}

	FullStaff = []string{
		RoleATM,
		RoleDATM,
		RoleTA,
		RoleWM,
		RoleEC,
		RoleFE,
	}

	AllStaff = []string{
		RoleATM,
		RoleDATM,
		RoleTA,
		RoleATA,
		RoleWM,
		RoleAWM,
		RoleEC,
		RoleAEC,
		RoleFE,
		RoleAFE,
	}

	SeniorTrainingStaff = []string{
		RoleTA,
		RoleATA,
		RoleINS,
		RoleWM,
	}

	TrainingStaff = []string{
		RoleTA,
		RoleATA,
		RoleINS,
		RoleMTR,
		RoleWM,
	}

	CanEvents = []string{
		RoleATM,
		RoleDATM,
		RoleTA,
		RoleWM,
		RoleEC,
		RoleAEC,
	}

	CanAirports = []string{
		RoleATM,
		RoleDATM,
		RoleTA,
		RoleWM,
		RoleAWM,
		RoleFE,
		RoleAFE,
	}

	CanManageCertifications = []string{
		RoleATM,
		RoleDATM,
		RoleTA,
		RoleWM,
		RoleAWM,
	}

	CanComment = []string{
		RoleATM,
		RoleDATM,
		RoleTA,
		RoleATA,
		RoleWM,
		RoleAWM,
		RoleEC,
		RoleAEC,
		RoleFE,
		RoleAFE,
		RoleINS,
		RoleMTR,
	}

	CanCommentConfidential = []string{
		RoleATM,
		RoleDATM,
		RoleTA,
		RoleWM,
	}

	CanFaq = []string{
		RoleATM,
		RoleDATM,
		RoleTA,
		RoleATA,
		RoleWM,
		RoleAWM,
		RoleEC,
		RoleAEC,
		RoleFE,
		RoleAFE,
	}
)

// Role short names as stored in roles.role_name_short.
const (
	RoleATM = "ATM" // air traffic manager
	RoleDATM = "DATM"
	RoleTA  = "TA" // training administrator
	RoleATA = "ATA"
	RoleWM  = "WM" // webmaster
	RoleAWM = "AWM"
	RoleEC  = "EC" // events coordinator
	RoleAEC = "AEC"
	RoleFE  = "FE" // facility engineer
	RoleAFE = "AFE"
	RoleINS = "INS"
	RoleMTR = "MTR"
)

// Capability pseudo-roles. They live on the user row as booleans but are
// surfaced through the role cache so endpoint gates can treat them like
// any other role.
const (
	CanRegisterForEvents = "CanRegisterForEvents"
	CanRequestTraining   = "CanRequestTraining"
)
