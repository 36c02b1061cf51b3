package textprocessor

// Structural keys of the flattened snapshot format. They are always
// treated as stop words so a learned token can never shadow a counter.
var StructuralKeys = []string{"tcount", "wordtotal"}

var DefaultStopWords = []string{"a", "all", "am", "an", "and", "any", "are", "as", "at", "be", "because",
	"been", "being", "but", "by", "count", "could", "did", "do", "does", "doing", "during",
	"each", "few", "for", "had", "has", "have", "having", "he", "hed", "hes",
	"her", "here", "heres", "hers", "herself", "him", "himself", "his", "how",
	"hows", "i", "id", "im", "ive", "if", "in", "into", "is", "it", "its", "itself",
	"lets", "me", "more", "most", "my", "myself", "of", "off", "on", "once",
	"only", "or", "other", "ought", "our", "ours", "ourselves", "over", "own",
	"same", "she", "shes", "should", "so", "some", "such", "than", "that",
	"thats", "the", "their", "theirs", "them", "themselves", "then", "there",
	"theres", "these", "they", "theyd", "theyll", "theyre", "theyve", "this",
	"those", "through", "to", "too", "until", "was", "we", "wed", "well", "were",
	"weve", "what", "whats", "when", "whens", "where", "wheres", "which",
	"while", "who", "whos", "whom", "why", "whys", "with", "would", "you", "youd",
	"youll", "youre", "your", "youve", "yours", "yourself", "yourselves"}

// withStructuralKeys copies words and appends the structural keys.
func withStructuralKeys(words []string) []string {
	out := make([]string, 0, len(words)+len(StructuralKeys))
	out = append(out, words...)
	return append(out, StructuralKeys...)
}
