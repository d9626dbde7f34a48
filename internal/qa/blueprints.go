package qa

// Blueprint tables for synthetic QA generation over the CargoHub policy
// corpus. Each table is a fixed list of tagged records; generation iterates
// simple, then complex, then negative, in declaration order. Headings are
// stored pre-normalized (see normalizeHeading).

// SimpleBlueprint asks about a single policy section.
type SimpleBlueprint struct {
	ID             string
	Heading        string
	Questions      []string
	Split          string
	AnswerOverride string
}

// ComplexBlueprint composes an answer from several sections; headings that
// do not resolve are skipped.
type ComplexBlueprint struct {
	ID        string
	Headings  []string
	Questions []string
	Split     string
}

// NegativeBlueprint asks about information absent from the corpus and is
// answered with a fixed refusal.
type NegativeBlueprint struct {
	ID        string
	Questions []string
	Split     string
}

var simpleBlueprints = []SimpleBlueprint{
	{
		ID:      "simple_delivery_time",
		Heading: "standart teslimat süresi",
		Questions: []string{
			"Standart teslimat süresi ne kadar?",
			"Standart gönderilerin tahmini teslim süresi nedir?",
		},
		Split: "test",
	},
	{
		ID:      "simple_defective_return_window",
		Heading: "kusurlu ürün iadeleri",
		Questions: []string{
			"Üretim hatası olan ürünler için iade süresi kaç gün?",
			"Kusurlu ürünlerde kaç gün içinde iade talep edebilirim?",
		},
		Split:          "dev",
		AnswerOverride: "Üretim hatası taşıyan ürünler için iade süresi 30 gündür ve kargo masrafı CargoHub tarafından karşılanır.",
	},
	{
		ID:      "simple_warranty",
		Heading: "elektronik ürün garantisi",
		Questions: []string{
			"Elektronik ürünlerin garantisi kaç yıl?",
			"Elektronik kategorisinde garanti süresi nedir?",
		},
		Split: "train",
	},
}

var complexBlueprints = []ComplexBlueprint{
	{
		ID:       "complex_return_difference",
		Headings: []string{"normal iade koşulları", "kusurlu ürün iadeleri"},
		Questions: []string{
			"Normal iade ile kusurlu ürün iadesi arasındaki farklar nelerdir?",
			"Standart iade politikasıyla kusurlu ürün iadesi nasıl ayrışıyor?",
		},
		Split: "test",
	},
	{
		ID:       "complex_cancellation_after_shipping",
		Headings: []string{"kargoya verilmiş siparişlerin iptali", "normal iade koşulları"},
		Questions: []string{
			"Siparişim kargoya verildiyse iptal edebilir miyim?",
			"Kargo taşıyıcıya teslim edildikten sonra iptal süreci nasıl işler?",
		},
		Split: "dev",
	},
	{
		ID:       "complex_peak_period",
		Headings: []string{"yoğun dönem teslimatları", "standart teslimat süresi"},
		Questions: []string{
			"Yoğun dönemlerde kargo ne kadar sürebilir?",
			"Kampanya dönemlerinde teslimat süreleri nasıl etkilenir?",
		},
		Split: "train",
	},
}

var negativeBlueprints = []NegativeBlueprint{
	{
		ID: "negative_new_product",
		Questions: []string{
			"Yeni bir ürünün ne zaman piyasaya sürüleceği bilgisi var mı?",
			"Yeni ürün lansman tarihleri dokümanda bulunuyor mu?",
		},
		Split: "test",
	},
	{
		ID: "negative_price",
		Questions: []string{
			"Ürünlerin fiyatı ne kadar?",
			"Fiyat listesi paylaşılmış mı?",
		},
		Split: "dev",
	},
	{
		ID: "negative_credit_card",
		Questions: []string{
			"Hangi kredi kartları geçerli?",
			"Desteklenen ödeme kartları hangileri?",
		},
		Split: "train",
	},
}

// NegativeAnswer is the fixed refusal for negative blueprints.
const NegativeAnswer = "Bu bilgi referans dokümanında yer almıyor. CargoHub kayıtlarında paylaşılmadı."
