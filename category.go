package harvest

// Category is a topical label assigned to an article.
type Category string

// Category values, in evaluation order.
const (
	CategoryTechnology Category = "技术"
	CategoryProduct    Category = "产品"
	CategoryStartup    Category = "创业"
	CategoryMarket     Category = "市场"
	CategoryOther      Category = "其他"
)

// CategoryRule maps a category to the keywords that select it.
type CategoryRule struct {
	Category Category `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// DefaultCategoryRules returns the built-in rules in evaluation order.
// Texts matching none of them fall into CategoryOther.
func DefaultCategoryRules() []CategoryRule {
	return []CategoryRule{
		{Category: CategoryTechnology, Keywords: []string{"技术", "开发", "编程", "软件"}},
		{Category: CategoryProduct, Keywords: []string{"产品", "设计", "用户体验", "UI"}},
		{Category: CategoryStartup, Keywords: []string{"创业", "初创", "商业模式", "融资"}},
		{Category: CategoryMarket, Keywords: []string{"市场", "营销", "广告", "用户获取"}},
	}
}

// Classifier assigns a category to text.
type Classifier interface {
	// Classify returns the first category whose keywords occur in text,
	// or CategoryOther when none do.
	Classify(text string) Category
}
