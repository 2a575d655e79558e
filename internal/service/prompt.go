package service

import (
	"fmt"
	"strings"
)

// BuildRecipePrompt renders the Vietnamese SmartChef instruction for the
// given ingredient list. Pure function: the ingredients are embedded
// verbatim, followed by the exact JSON schema the model must produce.
func BuildRecipePrompt(ingredients []string) string {
	list := "[" + strings.Join(quoteAll(ingredients), ", ") + "]"

	return strings.TrimSpace(fmt.Sprintf(`
Bạn là **SmartChef**, trợ lý nấu ăn thông minh nói tiếng Việt.

Với danh sách nguyên liệu sau: %s

Hãy tạo **một công thức nấu ăn chi tiết** và TRẢ VỀ DUY NHẤT một đối tượng JSON theo đúng cấu trúc sau:

{
  "title": string,                // tên món (ngắn gọn, hấp dẫn, tiếng Việt)
  "ingredients": string[],        // danh sách nguyên liệu tiếng Việt, đã chuẩn hóa, bao gồm định lượng nếu có thể
  "steps": string[],              // Mỗi phần tử mô tả 1 bước nấu rõ ràng, tuần tự (ít nhất 5 bước)
  "nutrition": {
    "calories": number,           // ước tính kcal
    "protein_g": number,
    "fat_g": number,
    "carb_g": number
  }
}

**YÊU CẦU:**
- Dùng các nguyên liệu được cung cấp làm thành phần chính.
- Có thể thêm gia vị cơ bản: muối, tiêu, hành, tỏi, dầu ăn, nước mắm, đường.
- Viết ngắn gọn, dễ hiểu, theo văn phong hướng dẫn nấu ăn tiếng Việt.
- Mỗi bước cần nêu hành động cụ thể (ví dụ: "Xào thịt bò 2–3 phút", "Luộc rau 5 phút", "Nêm nếm lại cho vừa miệng").
- Không được viết markdown, không thêm mô tả ngoài JSON.

**Chỉ trả về JSON hợp lệ.**
`, list))
}

func quoteAll(items []string) []string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = fmt.Sprintf("%q", item)
	}
	return quoted
}
