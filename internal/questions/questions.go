// Package questions defines the fixed intake question sequence and the
// per-species breed catalog.
package questions

// InputKind describes the input widget a question expects.
type InputKind string

const (
	InputSelect    InputKind = "select"
	InputText      InputKind = "text"
	InputMultiline InputKind = "multiline"
)

// Input describes how an answer is collected.
type Input struct {
	Kind        InputKind `json:"kind"`
	Options     []string  `json:"options,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
}

// Question is a single step of the intake sequence. Questions are immutable
// and defined at startup.
type Question struct {
	Field     string `json:"field"`
	Prompt    string `json:"prompt"`
	Input     Input  `json:"input"`
	Required  bool   `json:"required"`
	DependsOn string `json:"depends_on,omitempty"`
}

// Field names, in sequence order.
const (
	FieldSpecies        = "species"
	FieldBreed          = "breed"
	FieldAge            = "age"
	FieldSex            = "sex"
	FieldMedicalHistory = "medical_history"
	FieldSymptoms       = "symptoms"
	FieldOtherInfo      = "other_info"
)

// MixedUnknown leads every breed option list.
const MixedUnknown = "Mixed/Unknown"

var sequence = []Question{
	{
		Field:    FieldSpecies,
		Prompt:   "What species is your pet?",
		Input:    Input{Kind: InputSelect, Options: SpeciesOptions()},
		Required: true,
	},
	{
		Field:     FieldBreed,
		Prompt:    "What breed is your pet?",
		Input:     Input{Kind: InputSelect},
		Required:  true,
		DependsOn: FieldSpecies,
	},
	{
		Field:    FieldAge,
		Prompt:   "How old is your pet?",
		Input:    Input{Kind: InputText, Placeholder: "e.g. 3 years"},
		Required: true,
	},
	{
		Field:    FieldSex,
		Prompt:   "What sex is your pet?",
		Input:    Input{Kind: InputSelect, Options: []string{"Male", "Female", "Male (neutered)", "Female (spayed)", "Unknown"}},
		Required: true,
	},
	{
		Field:    FieldMedicalHistory,
		Prompt:   "Any relevant medical history? (optional)",
		Input:    Input{Kind: InputMultiline, Placeholder: "Vaccinations, past illnesses, medications..."},
		Required: false,
	},
	{
		Field:    FieldSymptoms,
		Prompt:   "What symptoms have you observed?",
		Input:    Input{Kind: InputMultiline, Placeholder: "e.g. vomiting since yesterday, lethargy"},
		Required: true,
	},
	{
		Field:    FieldOtherInfo,
		Prompt:   "Anything else we should know? (optional)",
		Input:    Input{Kind: InputMultiline},
		Required: false,
	},
}

var breedsBySpecies = map[string][]string{
	"Dog": {
		"Labrador Retriever", "Golden Retriever", "German Shepherd", "French Bulldog",
		"Poodle", "Beagle", "Dachshund", "Boxer", "Chihuahua", "Border Collie",
		"Yorkshire Terrier", "Shih Tzu", "Husky", "Rottweiler",
	},
	"Cat": {
		"Domestic Shorthair", "Domestic Longhair", "Siamese", "Persian",
		"Maine Coon", "Ragdoll", "Bengal", "British Shorthair", "Sphynx", "Abyssinian",
	},
	"Bird": {
		"Budgerigar", "Cockatiel", "Canary", "Lovebird", "African Grey Parrot",
		"Cockatoo", "Finch", "Conure",
	},
	"Rabbit": {
		"Holland Lop", "Netherland Dwarf", "Mini Rex", "Lionhead",
		"Flemish Giant", "Dutch",
	},
	"Hamster": {
		"Syrian", "Dwarf Campbell Russian", "Dwarf Winter White Russian",
		"Roborovski", "Chinese",
	},
	"Guinea Pig": {
		"American", "Abyssinian", "Peruvian", "Silkie", "Teddy",
	},
	"Reptile": {
		"Bearded Dragon", "Leopard Gecko", "Corn Snake", "Ball Python",
		"Red-Eared Slider", "Crested Gecko",
	},
}

// Sequence returns the intake questions in submission order.
func Sequence() []Question {
	qs := make([]Question, len(sequence))
	copy(qs, sequence)
	return qs
}

// SpeciesOptions lists the supported species.
func SpeciesOptions() []string {
	return []string{"Dog", "Cat", "Bird", "Rabbit", "Hamster", "Guinea Pig", "Reptile", "Other"}
}

// BreedOptions returns the breed list for a species, always led by
// "Mixed/Unknown". Unknown species get just the leading entry.
func BreedOptions(species string) []string {
	breeds := breedsBySpecies[species]
	options := make([]string, 0, len(breeds)+1)
	options = append(options, MixedUnknown)
	options = append(options, breeds...)
	return options
}

// ByField looks up a question by its field name.
func ByField(field string) (Question, bool) {
	for _, q := range sequence {
		if q.Field == field {
			return q, true
		}
	}
	return Question{}, false
}
