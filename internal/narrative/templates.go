package narrative

// Base dialogue templates keyed by conversation context, then interaction
// style. Placeholders are filled from the NPC profile at generation time.
var dialogueTemplates = map[string]map[string]string{
	"greeting": {
		"formal":   "Greetings, traveler. I am {npc_name}, {npc_title}. {custom_intro}",
		"friendly": "Hello! Great to see you here! I'm {npc_name}. {custom_intro}",
		"cautious": "Hmm... {hesitation} I'm {npc_name}. {custom_intro}",
		"excited":  "Wow! A new face! I'm {npc_name}! {custom_intro}",
	},
	"quest_offer": {
		"urgent":      "I need your help immediately. {quest_description} Time is running out!",
		"mysterious":  "I have an... interesting proposal. {quest_description} There's more to this than meets the eye.",
		"casual":      "If you have time, could you help me with something? {quest_description} No rush.",
		"challenging": "I'm looking for someone with your skills. {quest_description} Few could manage this.",
	},
	"response_to_player_choice": {
		"approval":       "Excellent choice! {approval_response}",
		"disappointment": "{disappointment_response} I expected more from you.",
		"surprise":       "Interesting... {surprise_response} I didn't expect that.",
		"neutral":        "I understand your decision. {neutral_response}",
	},
}

// fallbackTemplate is used when no template exists for a context/style pair.
const fallbackTemplate = "Hello, I'm {npc_name}. How can I help?"

// moodModifier carries the speech adjustments for one NPC mood.
type moodModifier struct {
	speechPattern string
	wordChoices   []string
}

var moodModifiers = map[string]moodModifier{
	"happy": {
		speechPattern: "expansive and enthusiastic",
		wordChoices:   []string{"wonderful", "excellent", "fantastic", "amazing"},
	},
	"sad": {
		speechPattern: "slow and melancholic",
		wordChoices:   []string{"unfortunately", "sadly", "regrettably", "with sorrow"},
	},
	"angry": {
		speechPattern: "short and intense",
		wordChoices:   []string{"irritating", "absurd", "unacceptable", "outrageous"},
	},
	"curious": {
		speechPattern: "questioning and reflective",
		wordChoices:   []string{"interesting", "fascinating", "intriguing", "curious"},
	},
}

var allMoods = []string{"happy", "sad", "angry", "curious"}

var hesitations = []string{"Who approaches?", "You seem... different.", "Hmm..."}

// classPerspectives maps NPC class fragments to a worldview line used when
// no interaction-style response applies.
var classPerspectives = map[string]string{
	"Star Explorer":                    "each journey reveals new possibilities we couldn't imagine before setting out",
	"Techno-Mage Scientist":            "the intersection between science and the unexplained often reveals the most elegant solutions",
	"Guardian of the Floating Forests": "all parts of a system are connected, and each action creates ripples through the whole",
	"Sentient Alien Pet":               "communication goes far beyond words; sometimes the unspoken is more important",
	"Hero Apprentice":                  "the stories we hear shape the stories we live, and each of us is writing our own chapter",
}

const defaultPerspective = "each situation is unique and deserves careful consideration"
