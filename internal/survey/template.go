package survey

// TemplateCSV is a minimal well-formed dataset showing the expected headers.
const TemplateCSV = "age,d_intent,o_intent,d_trust,o_trust\n" +
	"18-30,5,3,4,2\n" +
	"31-50,4,4,3,5\n" +
	"50+,2,5,2,5\n" +
	"18-30,4,2,5,3\n" +
	"31-50,3,4,4,4\n" +
	"50+,1,4,1,4\n"
