package export

import "github.com/google/uuid"

// UnknownActor is the placeholder for any id without a configured name.
const UnknownActor = "Unknown actor"

// actorNames maps known member ids to display names. This is static
// configuration loaded once at startup; ids arriving from the API are matched
// exactly after UUID parsing.
var actorNames = map[uuid.UUID]string{
	uuid.MustParse("8a139487-9be6-4eaf-8e4e-0c2cdb2083e3"): "Carl",
	uuid.MustParse("2e890e0e-42fa-4d61-9b12-e839d9bc9651"): "Ale",
}

// ActorName resolves a member id to its configured display name. Anything
// unparseable or unconfigured resolves to UnknownActor.
func ActorName(id string) string {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return UnknownActor
	}
	name, ok := actorNames[parsed]
	if !ok {
		return UnknownActor
	}
	return name
}
