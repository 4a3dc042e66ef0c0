package services

// menuConcept ties words that tend to appear in category names to words that
// tend to appear in the names of items belonging to such a category.
// A category name containing any of excludes never matches the concept.
type menuConcept struct {
	hints    []string
	excludes []string
	keywords []string
}

var menuConcepts = map[string]menuConcept{
	"coffee": {
		hints:    []string{"coffee", "kahve", "قهوة", "hot drink", "sıcak içecek", "مشروبات ساخنة", "espresso bar"},
		keywords: []string{"coffee", "espresso", "latte", "cappuccino", "americano", "mocha", "macchiato", "flat white", "cortado", "kahve", "türk kahvesi", "قهوة", "لاتيه", "كابتشينو", "اسبريسو"},
	},
	"tea": {
		hints:    []string{"tea", "çay", "شاي", "hot drink", "sıcak içecek", "مشروبات ساخنة"},
		keywords: []string{"tea", "chai", "matcha", "earl grey", "herbal", "çay", "ıhlamur", "شاي", "بابونج"},
	},
	"hot_chocolate": {
		hints:    []string{"hot drink", "sıcak içecek", "مشروبات ساخنة"},
		keywords: []string{"hot chocolate", "sahlep", "salep", "sıcak çikolata", "سحلب", "شوكولاتة ساخنة"},
	},
	"cold_drinks": {
		hints:    []string{"cold drink", "soft drink", "beverage", "soğuk", "meşrubat", "مشروبات باردة", "مشروبات غازية"},
		excludes: []string{"hot", "sıcak", "ساخنة", "ساخن"},
		keywords: []string{"cola", "soda", "lemonade", "iced", "water", "ayran", "limonata", "frappe", "frappuccino", "mojito", "ليموناضة", "مياه", "مثلج"},
	},
	"juice": {
		hints:    []string{"juice", "smoothie", "fresh", "meyve suyu", "عصير", "عصائر"},
		keywords: []string{"juice", "smoothie", "orange", "mango", "strawberry", "meyve suyu", "portakal", "عصير", "برتقال", "مانجو"},
	},
	"dessert": {
		hints:    []string{"dessert", "sweet", "tatlı", "حلويات", "cake"},
		keywords: []string{"cake", "cheesecake", "brownie", "tiramisu", "baklava", "künefe", "kunafa", "ice cream", "dondurma", "pudding", "waffle", "cookie", "sufle", "كيك", "كنافة", "بقلاوة", "بوظة"},
	},
	"bakery": {
		hints:    []string{"bakery", "pastry", "pastries", "fırın", "pastane", "مخبوزات", "معجنات"},
		keywords: []string{"croissant", "bagel", "simit", "poğaça", "börek", "bread", "muffin", "danish", "كرواسون", "فطيرة"},
	},
	"breakfast": {
		hints:    []string{"breakfast", "brunch", "kahvaltı", "فطور", "إفطار"},
		keywords: []string{"egg", "eggs", "omelette", "omelet", "menemen", "pancake", "granola", "kahvaltı", "yumurta", "بيض", "فطور", "شكشوكة"},
	},
	"sandwich": {
		hints:    []string{"sandwich", "sandviç", "ساندويش", "wraps", "toast"},
		keywords: []string{"sandwich", "panini", "wrap", "toast", "tost", "club", "sandviç", "dürüm", "ساندويش", "شاورما"},
	},
	"burger": {
		hints:    []string{"burger", "برجر"},
		keywords: []string{"burger", "cheeseburger", "hamburger", "برجر"},
	},
	"pizza": {
		hints:    []string{"pizza", "بيتزا"},
		keywords: []string{"pizza", "margherita", "pepperoni", "calzone", "بيتزا"},
	},
	"pasta": {
		hints:    []string{"pasta", "makarna", "معكرونة", "باستا"},
		keywords: []string{"pasta", "spaghetti", "penne", "lasagna", "fettuccine", "ravioli", "makarna", "معكرونة", "باستا"},
	},
	"salad": {
		hints:    []string{"salad", "salata", "سلطة", "سلطات"},
		keywords: []string{"salad", "caesar", "salata", "tabbouleh", "fattoush", "سلطة", "تبولة", "فتوش"},
	},
	"soup": {
		hints:    []string{"soup", "çorba", "شوربة"},
		keywords: []string{"soup", "çorba", "mercimek", "شوربة"},
	},
	"mains": {
		hints:    []string{"main", "grill", "ızgara", "ana yemek", "مشاوي", "أطباق رئيسية"},
		keywords: []string{"kebab", "kebap", "steak", "chicken", "köfte", "grill", "ızgara", "tavuk", "دجاج", "كباب", "مشاوي", "ستيك"},
	},
	"appetizers": {
		hints:    []string{"appetizer", "starter", "snack", "meze", "مقبلات"},
		keywords: []string{"fries", "nuggets", "hummus", "meze", "wings", "mozzarella sticks", "patates", "حمص", "بطاطا"},
	},
}

// iconConcepts maps category icons to the concepts whose keywords the icon implies
var iconConcepts = map[string][]string{
	"☕":  {"coffee", "tea", "hot_chocolate"},
	"🍵":  {"tea"},
	"🫖":  {"tea"},
	"🥤":  {"cold_drinks"},
	"🧋":  {"cold_drinks"},
	"🍹":  {"cold_drinks", "juice"},
	"🧃":  {"juice"},
	"🍊":  {"juice"},
	"🍰":  {"dessert"},
	"🎂":  {"dessert"},
	"🧁":  {"dessert", "bakery"},
	"🍨":  {"dessert"},
	"🍦":  {"dessert"},
	"🥐":  {"bakery"},
	"🥖":  {"bakery"},
	"🍞":  {"bakery", "breakfast"},
	"🍳":  {"breakfast"},
	"🥞":  {"breakfast"},
	"🥪":  {"sandwich"},
	"🌯":  {"sandwich"},
	"🍔":  {"burger"},
	"🍕":  {"pizza"},
	"🍝":  {"pasta"},
	"🥗":  {"salad"},
	"🍲":  {"soup"},
	"🥣":  {"soup", "breakfast"},
	"🍖":  {"mains"},
	"🥩":  {"mains"},
	"🍗":  {"mains"},
	"🍟":  {"appetizers"},
	"🧆":  {"appetizers"},
}

// iconKeywords returns the de-duplicated keywords implied by an icon
func iconKeywords(icon string) []string {
	concepts, ok := iconConcepts[icon]
	if !ok {
		return nil
	}

	seen := make(map[string]bool)
	var out []string
	for _, name := range concepts {
		for _, kw := range menuConcepts[name].keywords {
			if !seen[kw] {
				seen[kw] = true
				out = append(out, kw)
			}
		}
	}
	return out
}
