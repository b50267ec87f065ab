package moderation

const verdictSchema = `
Respond with STRICT JSON only.
Output MUST start with { and end with }.
NO explanations. NO markdown.

Required JSON schema:
{
  "safe": boolean,
  "reason": "string (empty when safe)"
}
`

func promptFor(t Type) string {
	switch t {
	case TypeReview:
		return `You are a content moderator for a restaurant review site.
Flag the review text as unsafe ONLY if it contains hate speech, harassment,
explicit sexual content, threats, doxxing, or spam/advertising.
Honest negative opinions about food or service are SAFE.` + verdictSchema

	case TypeAvatar:
		return `You are a content moderator for user profile pictures.
Flag the image as unsafe if it contains nudity, sexual content, gore,
violent imagery, or hate symbols.` + verdictSchema

	default: // image_only
		return `You are a content moderator for restaurant photos.
Flag the image as unsafe if it contains nudity, sexual content, gore,
violent imagery, hate symbols, or is clearly unrelated spam.
Ordinary photos of food, menus, and restaurant interiors are SAFE.` + verdictSchema
	}
}
